package history

import (
	"bufio"
	"io"
	"strings"
)

// Reconstructor turns physical lines of the history file into logical
// records. get_iplayer writes descriptions verbatim, so a newline inside
// a description splits one record across several physical lines. The
// repair is a heuristic: lines are concatenated until the pipe count
// reaches the expected field count. It cannot distinguish a value that
// legitimately contains a pipe from a truncated line, so the result is
// best effort, not exact.
//
// Usage mirrors bufio.Scanner:
//
//	r := history.NewReconstructor(f)
//	for r.Scan() {
//	    line := r.Text()
//	    ...
//	}
type Reconstructor struct {
	scanner    *bufio.Scanner
	separators int
	text       string
}

func NewReconstructor(r io.Reader) *Reconstructor {
	return &Reconstructor{
		scanner:    bufio.NewScanner(r),
		separators: FieldCount - 1,
	}
}

// Scan advances to the next logical record. A trailing partial record
// that never reaches the required separator count is dropped.
func (r *Reconstructor) Scan() bool {
	pending := ""
	for r.scanner.Scan() {
		line := r.scanner.Text()
		pending += line
		if strings.Count(pending, Separator) >= r.separators {
			r.text = pending
			return true
		}
	}
	return false
}

// Text returns the logical record produced by the last call to Scan.
func (r *Reconstructor) Text() string {
	return r.text
}

// Err returns the first non-EOF error encountered while reading.
func (r *Reconstructor) Err() error {
	return r.scanner.Err()
}
