package history

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when neither the recorded path nor any
// alternate directory holds the media file.
var ErrNotFound = errors.New("media file not found")

// Resolved describes a media file located on disk.
type Resolved struct {
	// Path is the on-disk location that exists.
	Path string
	// FileName is the name the file is served under, possibly prefixed
	// with its series subfolder.
	FileName string
	// Extension is the file extension without the dot, after any mp3
	// substitution.
	Extension string
	// Size is the on-disk size in bytes, used for the enclosure length.
	Size int64
}

// Resolver locates the media file behind a history record. When the
// recorded path no longer exists (downloads moved to another machine or
// disk), each alternate directory is tried in order.
type Resolver struct {
	altDirs  []string
	forceMP3 bool
}

func NewResolver(altDirs []string, forceMP3 bool) *Resolver {
	// Candidate paths are formed by simple concatenation
	normalized := make([]string, 0, len(altDirs))
	for _, dir := range altDirs {
		if dir == "" {
			continue
		}
		if !strings.HasSuffix(dir, "/") {
			dir += "/"
		}
		normalized = append(normalized, dir)
	}

	return &Resolver{
		altDirs:  normalized,
		forceMP3: forceMP3,
	}
}

// Resolve finds the file for rec. With forceMP3 set, an m4a recording is
// looked up under the mp3 name instead; this assumes an external
// transcode already replaced the file, the resolver only renames the
// expected path.
func (r *Resolver) Resolve(rec Record) (Resolved, error) {
	fullPath := rec.FilePath
	fileName := path.Base(fullPath)

	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = fileName[i+1:]
	}

	if r.forceMP3 && ext == "m4a" {
		fileName = strings.TrimSuffix(fileName, "m4a") + "mp3"
		fullPath = strings.TrimSuffix(fullPath, "m4a") + "mp3"
		ext = "mp3"
	}

	// get_iplayer may have downloaded into a per-series subfolder; keep
	// it in the served name so alt-dir lookups and item URLs match the
	// on-disk layout.
	if dir := path.Dir(fullPath); dir != "." && dir != "/" {
		subFolder := path.Base(dir)
		if subFolder == SanitizeName(rec.SeriesName) {
			fileName = subFolder + "/" + fileName
		}
	}

	if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
		return Resolved{Path: fullPath, FileName: fileName, Extension: ext, Size: info.Size()}, nil
	}

	for _, dir := range r.altDirs {
		candidate := dir + fileName
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return Resolved{Path: candidate, FileName: fileName, Extension: ext, Size: info.Size()}, nil
		}
	}

	return Resolved{}, fmt.Errorf("%w: %s", ErrNotFound, rec.FilePath)
}

// SanitizeName maps a programme name to the directory/file form
// get_iplayer uses: " &" removed, spaces to underscores, colons and
// apostrophes stripped. The " &" removal has to run before the space
// substitution or it can never match.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, " &", "")
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "'", "")
	return name
}
