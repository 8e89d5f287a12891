package feed

import "strings"

// SplitSeriesName splits a programme name on ":" into the series key
// used for grouping and an optional subtitle. "Newsnight: Special"
// yields ("Newsnight", "Special"); a name without a colon has no
// subtitle.
func SplitSeriesName(name string) (seriesKey, subtitle string) {
	parts := strings.SplitN(name, ":", 2)
	seriesKey = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		subtitle = strings.TrimSpace(parts[1])
	}
	return seriesKey, subtitle
}

// ComposeTitle builds a display title from its parts:
//
//	<series> : S<seriesNum>E<episodeNum> : <subtitle> : <episodeName>
//
// with each segment omitted when empty. The same join rules apply to
// locally derived and catalog-enriched titles.
func ComposeTitle(series, seriesNum, episodeNum, subtitle, episodeName string) string {
	var b strings.Builder
	b.WriteString(series)

	if seriesNum != "" {
		b.WriteString(" : S")
		b.WriteString(seriesNum)
	} else if episodeNum != "" {
		b.WriteString(" : ")
	}
	if episodeNum != "" {
		b.WriteString("E")
		b.WriteString(episodeNum)
	}
	if subtitle != "" {
		b.WriteString(" : ")
		b.WriteString(subtitle)
	}
	if episodeName != "" {
		b.WriteString(" : ")
		b.WriteString(episodeName)
	}

	return b.String()
}
