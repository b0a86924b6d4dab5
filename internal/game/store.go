// Package game implements the daily session engine: the per-device result
// store, the legacy-format migration, and the session guard that decides
// whether today has already been played.
package game

import (
	"context"
	"time"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// Clock supplies the current wall-clock time. It is injected so tests can
// pin the calendar date.
type Clock func() time.Time

// Today returns the clock's current calendar date string.
func (c Clock) Today() string {
	return imposter.Today(c())
}

// ResultStore persists one result per calendar date for a single device.
//
// Implementations must fail soft on unreadable or corrupt records: a broken
// entry reads as absent so the game stays playable.
type ResultStore interface {
	// Get returns the stored result for a date, with ok=false when absent.
	Get(ctx context.Context, date string) (imposter.Result, bool, error)
	// Put writes or overwrites the result for its date atomically.
	Put(ctx context.Context, res imposter.Result) error
	// HasPlayed reports whether a result exists for the date.
	HasPlayed(ctx context.Context, date string) (bool, error)
}

// StatsStore persists the device's aggregate statistics.
type StatsStore interface {
	// Stats returns the current aggregate, or zeroed stats when absent.
	Stats(ctx context.Context) (imposter.Stats, error)
	// SaveStats overwrites the stored aggregate.
	SaveStats(ctx context.Context, s imposter.Stats) error
}

// LegacyRecord is the superseded single-slot persistence format: only the
// most recent play, no history. Score is nil when the legacy score field
// was missing.
type LegacyRecord struct {
	Date      string
	Score     *int
	Selection imposter.Selection
}

// LegacyStore reads the old-format record, if the device ever wrote one.
type LegacyStore interface {
	Last(ctx context.Context) (LegacyRecord, bool, error)
}
