// Package history persists the per-turn conversation log. Entries are
// append-only: one row per side of a turn, timestamped by the store at
// write time and retrieved most-recent-first.
package history

import (
	"context"
	"time"
)

// Entry is one persisted history line.
type Entry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Store translates between the durable backend and history entries.
// Implementations must be safe for concurrent writers; per-row atomicity is
// the backend's responsibility.
type Store interface {
	// Insert appends one row, timestamped by the store.
	Insert(ctx context.Context, regNo, message string) error
	// Recent returns up to limit entries for regNo, newest first.
	Recent(ctx context.Context, regNo string, limit int) ([]Entry, error)
	// Ping verifies the backend with a trivial round-trip.
	Ping(ctx context.Context) error
}
