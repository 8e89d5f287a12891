package feed

import (
	"cmp"
	"context"
	"log/slog"
	"strings"

	"github.com/jmcgarr/genrss/app/catalog"
	"github.com/jmcgarr/genrss/app/history"
)

// Builder turns an included, resolved history record into a feed Item.
// With an enricher attached it overlays catalog metadata; any enrichment
// failure falls back to the locally derived values and never fails the
// record.
type Builder struct {
	downloadsURL string
	enricher     *catalog.Enricher
}

// NewBuilder creates a builder. enricher may be nil to disable
// enrichment entirely.
func NewBuilder(downloadsURL string, enricher *catalog.Enricher) *Builder {
	return &Builder{
		downloadsURL: downloadsURL,
		enricher:     enricher,
	}
}

// Build renders one record. It returns the item, the series key used
// for grouping, and channel-level metadata when enrichment supplied it.
func (b *Builder) Build(ctx context.Context, rec history.Record, file history.Resolved) (Item, string, *SeriesMeta) {
	seriesKey, subtitle := SplitSeriesName(rec.SeriesName)
	mediaURL := b.downloadsURL + file.FileName

	item := Item{
		Title:           ComposeTitle(seriesKey, rec.SeriesNumber, rec.EpisodeNumber, subtitle, rec.EpisodeName),
		Description:     localDescription(rec),
		Link:            mediaURL,
		GUID:            rec.ProgramID,
		ImageURL:        rec.ThumbnailURL,
		DurationSecs:    rec.DurationSecs,
		PubDate:         rec.AddedAt,
		EnclosureURL:    mediaURL,
		EnclosureLength: file.Size,
		EnclosureType:   MIMEType(file.Extension),
	}

	if b.enricher == nil {
		return item, seriesKey, nil
	}

	programme, err := b.enricher.Enrich(ctx, rec.ProgramID)
	if err != nil {
		slog.Debug("Enrichment failed, using local metadata", "programme", rec.ProgramID, "error", err)
		return item, seriesKey, nil
	}

	item.Title = ComposeTitle(programme.DisplayTitle.Title, programme.SeriesPosition(),
		programme.EpisodePosition(), programme.DisplayTitle.Subtitle, "")
	item.Description = enrichedDescription(programme)

	if broadcast, err := programme.FirstBroadcast(); err == nil {
		item.PubDate = broadcast
	}
	if url := programme.ImageURL(); url != "" {
		item.ImageURL = url
	}

	meta := &SeriesMeta{
		Description: cmp.Or(programme.ShortSynopsis, programme.LongSynopsis),
		ImageURL:    programme.ImageURL(),
	}

	return item, seriesKey, meta
}

func localDescription(rec history.Record) string {
	if rec.WebURL == "" {
		return rec.Description
	}
	return rec.Description + "\n\n" + rec.WebURL
}

func enrichedDescription(programme *catalog.Programme) string {
	var b strings.Builder
	b.WriteString(programme.Synopsis())

	related := programme.RelatedLinks()
	if len(related) > 0 {
		b.WriteString("\n\nRelated links:")
		for _, link := range related {
			b.WriteString("\n")
			b.WriteString(link.Title)
			b.WriteString(": ")
			b.WriteString(link.URL)
		}
	}

	return b.String()
}

// MIMEType maps a file extension to the enclosure MIME type.
func MIMEType(ext string) string {
	switch strings.ToLower(ext) {
	case "aac", "m4a":
		return "audio/mp4"
	case "mp4":
		return "video/mp4"
	default:
		return "audio/mpeg"
	}
}
