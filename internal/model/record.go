// Package model defines core data structures for LogSieve.
package model

import (
	"strings"
	"time"
)

// Record represents a single parsed audit log line.
// A record is immutable once parsed: reducers that need any of its
// fields beyond the callback must copy them into their accumulator.
type Record struct {
	// Time is the event timestamp as written by the audit device.
	Time time.Time `json:"time"`

	// Type distinguishes request from response entries.
	Type string `json:"type"`

	// Auth describes the authenticated caller, if any.
	Auth Auth `json:"auth"`

	// Request describes the operation being performed.
	Request Request `json:"request"`

	// Error is the server-side error string, empty on success.
	Error string `json:"error"`
}

// Auth holds caller identity fields.
type Auth struct {
	EntityID    string   `json:"entity_id"`
	DisplayName string   `json:"display_name"`
	Policies    []string `json:"policies"`
	TokenType   string   `json:"token_type"`
}

// Request holds the operation fields of an audit entry.
type Request struct {
	ID            string `json:"id"`
	Operation     string `json:"operation"`
	Path          string `json:"path"`
	MountType     string `json:"mount_type"`
	MountPoint    string `json:"mount_point"`
	RemoteAddress string `json:"remote_address"`
}

// IsRequest reports whether the record is a request-type entry.
func (r *Record) IsRequest() bool {
	return r.Type == "request"
}

// IsLogin reports whether the record is a qualifying login-like event:
// a request against an auth mount's login endpoint.
func (r *Record) IsLogin() bool {
	if !r.IsRequest() {
		return false
	}
	p := r.Request.Path
	if !strings.HasPrefix(p, "auth/") {
		return false
	}
	return strings.HasSuffix(p, "/login") || strings.Contains(p, "/login/")
}

// MountKey returns the grouping key used for similarity matching:
// the explicit mount point when present, else the first two path
// segments ("auth/jwt/").
func (r *Record) MountKey() string {
	if r.Request.MountPoint != "" {
		return r.Request.MountPoint
	}
	parts := strings.SplitN(r.Request.Path, "/", 3)
	if len(parts) < 2 {
		return r.Request.Path
	}
	return parts[0] + "/" + parts[1] + "/"
}

// NamePrefix returns the colon-delimited prefix of a display name,
// e.g. "ci-runner" for "ci-runner:build-1234". Returns the whole name
// when no colon is present.
func NamePrefix(displayName string) string {
	if i := strings.IndexByte(displayName, ':'); i > 0 {
		return displayName[:i]
	}
	return displayName
}
