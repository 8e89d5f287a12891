// Package catalog fetches richer programme metadata from the remote
// programmes catalog and merges it over the locally derived values.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// LinkTypeRelatedSite marks external links worth surfacing in item
// descriptions.
const LinkTypeRelatedSite = "related_site"

type document struct {
	Programme *Programme `json:"programme"`
}

// Programme is the catalog payload for one programme ID.
type Programme struct {
	PID                string       `json:"pid"`
	Position           *int         `json:"position"`
	DisplayTitle       DisplayTitle `json:"display_title"`
	Image              *Image       `json:"image"`
	ShortSynopsis      string       `json:"short_synopsis"`
	LongSynopsis       string       `json:"long_synopsis"`
	FirstBroadcastDate string       `json:"first_broadcast_date"`
	Parent             *Parent      `json:"parent"`
	Links              []Link       `json:"links"`
}

type DisplayTitle struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type Image struct {
	PID string `json:"pid"`
}

type Parent struct {
	Programme *Programme `json:"programme"`
}

type Link struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ParseProgramme decodes a raw catalog response. A payload without a
// programme object or a display title is treated as malformed, which
// callers turn into a local-metadata fallback.
func ParseProgramme(raw []byte) (*Programme, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog payload: %w", err)
	}

	if doc.Programme == nil {
		return nil, fmt.Errorf("catalog payload has no programme object")
	}
	if doc.Programme.DisplayTitle.Title == "" {
		return nil, fmt.Errorf("catalog payload has no display title")
	}

	return doc.Programme, nil
}

// EpisodePosition returns the programme's own position within its
// parent, or "" when absent.
func (p *Programme) EpisodePosition() string {
	if p.Position == nil {
		return ""
	}
	return strconv.Itoa(*p.Position)
}

// SeriesPosition returns the parent series' position, or "" when absent.
func (p *Programme) SeriesPosition() string {
	if p.Parent == nil || p.Parent.Programme == nil || p.Parent.Programme.Position == nil {
		return ""
	}
	return strconv.Itoa(*p.Parent.Programme.Position)
}

// ImageURL derives the recipe URL for the programme image, or "" when
// the payload carries no image identifier.
func (p *Programme) ImageURL() string {
	if p.Image == nil || p.Image.PID == "" {
		return ""
	}
	return fmt.Sprintf("https://ichef.bbci.co.uk/images/ic/480xn/%s.jpg", p.Image.PID)
}

// FirstBroadcast parses the ISO-8601 first-broadcast timestamp.
func (p *Programme) FirstBroadcast() (time.Time, error) {
	if p.FirstBroadcastDate == "" {
		return time.Time{}, fmt.Errorf("programme has no first broadcast date")
	}

	t, err := time.Parse(time.RFC3339, p.FirstBroadcastDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse first broadcast date: %w", err)
	}
	return t, nil
}

// RelatedLinks returns the links of the related-site type, in payload
// order.
func (p *Programme) RelatedLinks() []Link {
	var related []Link
	for _, link := range p.Links {
		if link.Type == LinkTypeRelatedSite && link.URL != "" {
			related = append(related, link)
		}
	}
	return related
}

// Synopsis returns the long synopsis, falling back to the short one.
func (p *Programme) Synopsis() string {
	if p.LongSynopsis != "" {
		return p.LongSynopsis
	}
	return p.ShortSynopsis
}
