package feed

import "time"

// Item is one rendered podcast entry. Text fields are raw; escaping
// happens once, when the generator writes them out.
type Item struct {
	Title           string
	Description     string
	Link            string
	GUID            string
	ImageURL        string
	DurationSecs    int
	PubDate         time.Time
	EnclosureURL    string
	EnclosureLength int64
	EnclosureType   string
}

// Channel holds the global feed parameters supplied on the command
// line; per-series channels derive from it.
type Channel struct {
	Title       string
	Description string
	Link        string
	ImageURL    string
	TTL         int
	WebMaster   string
}

// SeriesMeta carries channel-level metadata taken from the enrichment
// payload of a group's first item.
type SeriesMeta struct {
	Description string
	ImageURL    string
}

// ChannelData is one fully resolved channel ready for rendering.
type ChannelData struct {
	Title       string
	Description string
	Link        string
	ImageURL    string
	TTL         int
	WebMaster   string
	Items       []Item
}
