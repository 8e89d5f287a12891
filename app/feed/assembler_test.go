package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testChannel() Channel {
	return Channel{
		Title:       "My Downloads",
		Description: "Stuff I recorded",
		Link:        "https://example.com/rss/index.html",
		ImageURL:    "https://example.com/rss/image.jpg",
		TTL:         60,
		WebMaster:   "me@example.com",
	}
}

func TestAssembler_GroupOrder(t *testing.T) {
	assembler := NewAssembler(testChannel())

	assembler.Add("Newsnight", Item{Title: "Newsnight : E1"}, nil)
	assembler.Add("Panorama", Item{Title: "Panorama : E1"}, nil)
	assembler.Add("Newsnight", Item{Title: "Newsnight : E2"}, nil)

	keys := assembler.SeriesKeys()
	if len(keys) != 2 || keys[0] != "Newsnight" || keys[1] != "Panorama" {
		t.Errorf("Expected first-seen order [Newsnight Panorama], got %v", keys)
	}
	if assembler.ItemCount() != 3 {
		t.Errorf("Expected 3 items, got %d", assembler.ItemCount())
	}
}

func TestAssembler_WriteAll(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "feed.xml")
	buildTime := time.Date(2023, 7, 4, 12, 0, 0, 0, time.UTC)

	assembler := NewAssembler(testChannel())
	assembler.Add("Newsnight", Item{Title: "Newsnight : E1", GUID: "n1"}, nil)
	assembler.Add("Newsnight", Item{Title: "Newsnight : E2", GUID: "n2"}, nil)
	assembler.Add("Panorama", Item{Title: "Panorama : E1", GUID: "p1"}, nil)

	written, err := assembler.WriteAll(output, buildTime)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("Expected 3 documents written, got %v", written)
	}

	// Unified document: both series, one channel each
	unified, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read unified feed: %v", err)
	}
	if strings.Count(string(unified), "<channel>") != 2 {
		t.Error("Unified document should contain one channel per series")
	}
	if !strings.Contains(string(unified), "<guid>n1</guid>") ||
		!strings.Contains(string(unified), "<guid>p1</guid>") {
		t.Error("Unified document should contain items from both series")
	}

	// Items keep encounter order within their channel
	if strings.Index(string(unified), "<guid>n1</guid>") > strings.Index(string(unified), "<guid>n2</guid>") {
		t.Error("Items should keep encounter order")
	}

	// Per-series documents only carry their own items
	newsnight, err := os.ReadFile(filepath.Join(dir, "Newsnight.xml"))
	if err != nil {
		t.Fatalf("Failed to read per-series feed: %v", err)
	}
	if !strings.Contains(string(newsnight), "<title>My Downloads : Newsnight</title>") {
		t.Error("Per-series channel title should suffix the series name")
	}
	if strings.Contains(string(newsnight), "<guid>p1</guid>") {
		t.Error("Per-series document should not contain other series' items")
	}

	panorama, err := os.ReadFile(filepath.Join(dir, "Panorama.xml"))
	if err != nil {
		t.Fatalf("Failed to read per-series feed: %v", err)
	}
	if strings.Count(string(panorama), "<item>") != 1 {
		t.Error("Panorama document should contain exactly one item")
	}
}

func TestAssembler_SeriesMetaOverridesChannel(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "feed.xml")

	assembler := NewAssembler(testChannel())
	meta := &SeriesMeta{
		Description: "Arts news from the catalog",
		ImageURL:    "https://ichef.bbci.co.uk/images/ic/480xn/p0img123.jpg",
	}
	assembler.Add("Front Row", Item{Title: "Front Row : E1"}, meta)

	if _, err := assembler.WriteAll(output, time.Now()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	doc, err := os.ReadFile(filepath.Join(dir, "Front_Row.xml"))
	if err != nil {
		t.Fatalf("Failed to read per-series feed: %v", err)
	}
	if !strings.Contains(string(doc), "<description>Arts news from the catalog</description>") {
		t.Error("Channel description should come from the enrichment payload")
	}
	if !strings.Contains(string(doc), "<url>https://ichef.bbci.co.uk/images/ic/480xn/p0img123.jpg</url>") {
		t.Error("Channel image should come from the enrichment payload")
	}
}

func TestAssembler_MetaOnlyFromFirstItem(t *testing.T) {
	assembler := NewAssembler(testChannel())
	assembler.Add("Front Row", Item{Title: "E1"}, nil)
	assembler.Add("Front Row", Item{Title: "E2"}, &SeriesMeta{Description: "late meta"})

	data := assembler.channelData(assembler.groups["Front Row"])
	if data.Description != "Stuff I recorded" {
		t.Errorf("Meta from a later item should be ignored, got description '%s'", data.Description)
	}
}
