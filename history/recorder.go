package history

import (
	"context"
	"strings"
)

// Provenance prefixes for persisted messages.
const (
	userPrefix      = "User: "
	assistantPrefix = "Assistant: "
)

// DefaultRecentLimit is the entry cap for recent-history queries.
const DefaultRecentLimit = 20

// Recorder tags history lines with their provenance before handing them to
// the store. Callers treat writes as best-effort; a failed write is logged
// by the caller and never retried.
type Recorder struct {
	store Store
}

// NewRecorder creates a Recorder over the given store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// User persists one user turn.
func (r *Recorder) User(ctx context.Context, regNo, content string) error {
	return r.store.Insert(ctx, regNo, userPrefix+content)
}

// Assistant persists one assembled assistant reply, trimmed of surrounding
// whitespace.
func (r *Recorder) Assistant(ctx context.Context, regNo, reply string) error {
	return r.store.Insert(ctx, regNo, assistantPrefix+strings.TrimSpace(reply))
}

// Recent returns up to limit entries for regNo, newest first. A limit of 0
// or less uses DefaultRecentLimit.
func (r *Recorder) Recent(ctx context.Context, regNo string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return r.store.Recent(ctx, regNo, limit)
}
