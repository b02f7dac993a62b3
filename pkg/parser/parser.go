// Package parser turns raw audit log lines into model.Record values.
//
// Parsing is deliberately forgiving: production audit logs routinely
// contain truncated or partially-written lines (log rotation, concurrent
// writers), so a malformed line is reported as a typed error for the
// caller to count, never as a fatal condition.
package parser

import (
	"bytes"
	"encoding/json"

	"github.com/logsieve/logsieve/internal/model"
)

// Parse deserializes one log line into a Record.
//
// A blank or whitespace-only line returns ErrBlankLine: callers should
// skip it silently without counting it as a failure. Any other line that
// does not deserialize cleanly returns an error wrapping ErrMalformedLine.
// Parse never panics on malformed input.
func Parse(line []byte) (*model.Record, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, ErrBlankLine
	}

	// Reject obvious non-JSON before paying for a full unmarshal.
	if line[0] != '{' {
		return nil, &MalformedLineError{Snippet: snippet(line)}
	}

	var rec model.Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, &MalformedLineError{Snippet: snippet(line), Err: err}
	}
	return &rec, nil
}

// snippetLen bounds how much of a bad line is kept for error messages.
const snippetLen = 64

func snippet(line []byte) string {
	if len(line) > snippetLen {
		return string(line[:snippetLen]) + "..."
	}
	return string(line)
}
