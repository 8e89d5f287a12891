package feed

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmcgarr/genrss/app/history"
)

// Assembler collects items into per-series groups and writes the output
// documents. It is the single owner of the grouping state; groups keep
// first-seen order, and items within a group keep encounter order.
type Assembler struct {
	channel   Channel
	generator *Generator
	groups    map[string]*seriesGroup
	order     []string
}

type seriesGroup struct {
	key   string
	meta  *SeriesMeta
	items []Item
}

func NewAssembler(channel Channel) *Assembler {
	return &Assembler{
		channel:   channel,
		generator: NewGenerator(),
		groups:    make(map[string]*seriesGroup),
	}
}

// Add appends an item to its series group, creating the group on first
// sight. meta is kept only when it accompanies the group's first item.
func (a *Assembler) Add(seriesKey string, item Item, meta *SeriesMeta) {
	group, ok := a.groups[seriesKey]
	if !ok {
		group = &seriesGroup{key: seriesKey, meta: meta}
		a.groups[seriesKey] = group
		a.order = append(a.order, seriesKey)
	}
	group.items = append(group.items, item)
}

// ItemCount returns the total number of items across all groups.
func (a *Assembler) ItemCount() int {
	count := 0
	for _, group := range a.groups {
		count += len(group.items)
	}
	return count
}

// SeriesKeys returns the group keys in first-seen order.
func (a *Assembler) SeriesKeys() []string {
	return a.order
}

// WriteAll writes the unified document to outputFile and one document
// per series next to it, named after the sanitized series key. It
// returns the paths written.
func (a *Assembler) WriteAll(outputFile string, buildTime time.Time) ([]string, error) {
	unified := make([]ChannelData, 0, len(a.order))
	for _, key := range a.order {
		unified = append(unified, a.channelData(a.groups[key]))
	}

	if err := os.WriteFile(outputFile, []byte(a.generator.Run(unified, buildTime)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write feed %s: %w", outputFile, err)
	}
	written := []string{outputFile}

	dir := filepath.Dir(outputFile)
	for _, key := range a.order {
		path := filepath.Join(dir, history.SanitizeName(key)+".xml")
		doc := a.generator.Run([]ChannelData{a.channelData(a.groups[key])}, buildTime)
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return written, fmt.Errorf("failed to write feed %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// channelData resolves one group against the global channel defaults.
func (a *Assembler) channelData(group *seriesGroup) ChannelData {
	data := ChannelData{
		Title:       a.channel.Title + " : " + group.key,
		Description: a.channel.Description,
		Link:        a.channel.Link,
		ImageURL:    a.channel.ImageURL,
		TTL:         a.channel.TTL,
		WebMaster:   a.channel.WebMaster,
		Items:       group.items,
	}

	if group.meta != nil {
		data.Description = cmp.Or(group.meta.Description, data.Description)
		data.ImageURL = cmp.Or(group.meta.ImageURL, data.ImageURL)
	}

	return data
}
