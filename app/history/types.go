// Package history reads get_iplayer's download_history file: a plain
// text log with one pipe-delimited record per logical line.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Separator is the field delimiter used by download_history.
const Separator = "|"

// FieldCount is the number of positional fields per record.
const FieldCount = 17

// Positional field layout of a download_history record.
const (
	fieldPID = iota
	fieldName
	fieldEpisode
	fieldType
	fieldTimeAdded
	fieldMode
	fieldFileName
	fieldVersions
	fieldDuration
	fieldDescription
	fieldChannel
	fieldCategories
	fieldThumbnail
	fieldGuidance
	fieldWeb
	fieldEpisodeNum
	fieldSeriesNum
)

// MediaKind is the get_iplayer media type of a record, kept as the raw
// history value ("tv", "radio", ...) so that user-supplied filters match
// exactly what the log contains.
type MediaKind string

const (
	KindTV    MediaKind = "tv"
	KindRadio MediaKind = "radio"
)

// Record is one parsed entry of the download history. Immutable after
// construction.
type Record struct {
	ProgramID     string
	SeriesName    string
	EpisodeName   string
	Kind          MediaKind
	AddedAt       time.Time
	Mode          string
	FilePath      string
	Versions      string
	DurationSecs  int
	Description   string
	Channel       string
	Categories    string
	ThumbnailURL  string
	Guidance      string
	WebURL        string
	EpisodeNumber string
	SeriesNumber  string
}

// ParseError describes a logical line that could not be turned into a
// Record.
type ParseError struct {
	Reason string
	Fields int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed history record: %s (%d fields)", e.Reason, e.Fields)
}

// ParseRecord parses one logical record line into a Record. The line
// must contain exactly FieldCount pipe-separated fields.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != FieldCount {
		return Record{}, &ParseError{
			Reason: fmt.Sprintf("expected %d fields", FieldCount),
			Fields: len(fields),
		}
	}

	added, err := strconv.ParseInt(fields[fieldTimeAdded], 10, 64)
	if err != nil {
		return Record{}, &ParseError{
			Reason: fmt.Sprintf("invalid timestamp %q", fields[fieldTimeAdded]),
			Fields: len(fields),
		}
	}

	// Durations are sometimes blank in older history files
	duration := 0
	if fields[fieldDuration] != "" {
		duration, err = strconv.Atoi(fields[fieldDuration])
		if err != nil {
			duration = 0
		}
	}

	return Record{
		ProgramID:     fields[fieldPID],
		SeriesName:    fields[fieldName],
		EpisodeName:   fields[fieldEpisode],
		Kind:          MediaKind(fields[fieldType]),
		AddedAt:       time.Unix(added, 0).UTC(),
		Mode:          fields[fieldMode],
		FilePath:      fields[fieldFileName],
		Versions:      fields[fieldVersions],
		DurationSecs:  duration,
		Description:   fields[fieldDescription],
		Channel:       fields[fieldChannel],
		Categories:    fields[fieldCategories],
		ThumbnailURL:  fields[fieldThumbnail],
		Guidance:      fields[fieldGuidance],
		WebURL:        fields[fieldWeb],
		EpisodeNumber: fields[fieldEpisodeNum],
		SeriesNumber:  fields[fieldSeriesNum],
	}, nil
}
