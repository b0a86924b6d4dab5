// Package imposter defines the core domain types and pure game logic for
// the daily quiz. It has zero external dependencies — everything here is
// pure Go.
package imposter

import "time"

// DateFormat is the calendar date contract shared with every collaborator:
// local-timezone date, not UTC-normalized.
const DateFormat = "2006-01-02"

// SlotCount is the fixed number of profile slots in a puzzle.
const SlotCount = 8

// MaxScore is the highest achievable score (one point per slot).
const MaxScore = SlotCount

// StreakThreshold is the minimum score that keeps a streak alive.
const StreakThreshold = 4

type CyclistStatus string

const (
	StatusActive  CyclistStatus = "active"
	StatusRetired CyclistStatus = "retired"
)

// Cyclist is a profile record. The game core treats cyclists as immutable
// lookup values addressed by id; the admin workflow owns their lifecycle.
type Cyclist struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ImageURL    string        `json:"imageUrl"`
	Country     string        `json:"country"`
	Team        string        `json:"team"`
	Status      CyclistStatus `json:"status"`
	LastUpdated string        `json:"lastUpdated,omitempty"`
}

// Slot pairs a cyclist with the flag marking whether that cyclist is the
// exception to the day's statement. Slot order is display order only.
type Slot struct {
	CyclistID  string `json:"cyclistId"`
	IsImposter bool   `json:"isImposter"`
}

// Puzzle is one day's quiz: a statement and exactly SlotCount slots with
// unique cyclist ids. Date is the authoritative scheduling key.
type Puzzle struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Statement string `json:"statement"`
	Slots     []Slot `json:"slots"`
}

// Selection is the set of cyclist ids the player has marked as imposters.
// It is kept as an ordered slice for stable persistence; Normalize
// deduplicates it into set semantics.
type Selection []string

// Contains reports whether id is part of the selection.
func (s Selection) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Normalize returns a copy of the selection with duplicates removed,
// preserving first-seen order.
func (s Selection) Normalize() Selection {
	seen := make(map[string]struct{}, len(s))
	out := make(Selection, 0, len(s))
	for _, id := range s {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Result is the immutable outcome of one playthrough for one calendar date.
type Result struct {
	Date      string    `json:"date"`
	Score     int       `json:"score"`
	Selection Selection `json:"selection"`
}

// Today formats a wall-clock instant as a calendar date string in the
// clock's own location.
func Today(now time.Time) string {
	return now.Format(DateFormat)
}
