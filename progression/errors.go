package progression

import (
	"errors"
	"fmt"
)

// ErrEmptyProgression reports markup in which no directive ever closes.
var ErrEmptyProgression = errors.New("progression contains no directives")

// MalformedProgressionError pins a parse failure to the exact offending
// substring. Offset is a byte offset into the whitespace-stripped source.
type MalformedProgressionError struct {
	Offset int
	Text   string
	Reason string
	err    error
}

func (e *MalformedProgressionError) Error() string {
	return fmt.Sprintf("malformed progression at offset %d: %s: %q",
		e.Offset, e.Reason, e.Text)
}

func (e *MalformedProgressionError) Unwrap() error { return e.err }
