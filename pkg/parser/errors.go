package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrBlankLine is returned for empty or whitespace-only lines.
	// These are skipped silently and not counted as parse failures.
	ErrBlankLine = errors.New("parser: blank line")

	// ErrMalformedLine is the sentinel all malformed-line errors wrap.
	ErrMalformedLine = errors.New("parser: malformed line")
)

// MalformedLineError reports a line that could not be deserialized.
// It wraps ErrMalformedLine so callers can match with errors.Is.
type MalformedLineError struct {
	Snippet string
	Err     error
}

func (e *MalformedLineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parser: malformed line %q: %v", e.Snippet, e.Err)
	}
	return fmt.Sprintf("parser: malformed line %q", e.Snippet)
}

func (e *MalformedLineError) Unwrap() error { return ErrMalformedLine }
