package history

import "time"

// ShouldInclude reports whether a record falls inside the requested
// time window and matches the media-type filter. The window boundary is
// inclusive; an empty kind set matches everything.
func ShouldInclude(rec Record, windowStart time.Time, kinds []string) bool {
	if rec.AddedAt.Before(windowStart) {
		return false
	}

	if len(kinds) == 0 {
		return true
	}

	for _, kind := range kinds {
		if MediaKind(kind) == rec.Kind {
			return true
		}
	}
	return false
}
