package energy

import (
	"errors"
	"fmt"
)

// ErrNoQualifyingWindow is returned by DetectCut when no window holds enough deficit days.
// It is a normal outcome of a run, not a failure.
var ErrNoQualifyingWindow = errors.New("no qualifying deficit window")

// MalformedInputError reports a missing column or an unparsable value in an input log.
type MalformedInputError struct {
	Source string
	Column string
	// Row is the 1-based data row (header excluded), 0 when the error is not row specific.
	Row int
	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed input %s: row %d, column %q: %s", e.Source, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("malformed input %s: column %q: %s", e.Source, e.Column, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
