package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strconv"
	"time"
)

// PubDateFormat is the RFC-2822-style date layout used throughout the
// generated documents. Timestamps are rendered in UTC, so the offset is
// a literal +0000.
const PubDateFormat = "Mon, 02 Jan 2006 15:04:05 +0000"

// Generator renders channels into podcast RSS documents. The output is
// built by hand into a buffer; element text is escaped exactly once,
// here.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders one document containing the given channels. The unified
// document carries one channel per series; per-series documents carry a
// single channel.
func (g *Generator) Run(channels []ChannelData, buildTime time.Time) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd" version="2.0">`)
	buf.WriteString("\n")

	for _, channel := range channels {
		g.writeChannel(&buf, channel, buildTime)
	}

	buf.WriteString("</rss>\n")

	return buf.String()
}

func (g *Generator) writeChannel(buf *bytes.Buffer, channel ChannelData, buildTime time.Time) {
	buf.WriteString("  <channel>\n")

	g.writeElement(buf, "title", channel.Title, 4)
	g.writeElement(buf, "description", channel.Description, 4)
	g.writeElement(buf, "link", channel.Link, 4)
	g.writeElement(buf, "ttl", strconv.Itoa(channel.TTL), 4)

	if channel.ImageURL != "" {
		buf.WriteString("    <image>\n")
		g.writeElement(buf, "url", channel.ImageURL, 6)
		g.writeElement(buf, "title", channel.Title, 6)
		g.writeElement(buf, "link", channel.Link, 6)
		buf.WriteString("    </image>\n")
		buf.WriteString(fmt.Sprintf("    <itunes:image href=\"%s\"/>\n", html.EscapeString(channel.ImageURL)))
	}

	g.writeElement(buf, "lastBuildDate", buildTime.UTC().Format(PubDateFormat), 4)
	g.writeElement(buf, "pubDate", buildTime.UTC().Format(PubDateFormat), 4)
	g.writeElement(buf, "webMaster", channel.WebMaster, 4)

	for _, item := range channel.Items {
		g.writeItem(buf, item)
	}

	buf.WriteString("  </channel>\n")
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	g.writeElement(buf, "title", item.Title, 6)
	g.writeElement(buf, "description", item.Description, 6)
	g.writeElement(buf, "link", item.Link, 6)
	g.writeElement(buf, "guid", item.GUID, 6)

	if item.ImageURL != "" {
		buf.WriteString(fmt.Sprintf("      <itunes:image href=\"%s\"/>\n", html.EscapeString(item.ImageURL)))
	}
	if item.DurationSecs > 0 {
		g.writeElement(buf, "itunes:duration", strconv.Itoa(item.DurationSecs), 6)
	}

	g.writeElement(buf, "pubDate", item.PubDate.UTC().Format(PubDateFormat), 6)

	// RSS 2.0: url, length and type are all required on an enclosure
	buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"%d\" type=\"%s\"/>\n",
		html.EscapeString(item.EnclosureURL),
		item.EnclosureLength,
		html.EscapeString(item.EnclosureType)))

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
