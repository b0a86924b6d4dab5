package game

import (
	"context"
	"errors"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// ErrLocked is returned when a submission is attempted after today's result
// already exists.
var ErrLocked = errors.New("already played today")

// Status is the session guard's resolved state.
type Status string

const (
	// StatusOpen means today has not been played: toggles and one
	// submission are accepted.
	StatusOpen Status = "open"
	// StatusLocked means today's result exists: the stored outcome is
	// restored read-only and further input is rejected.
	StatusLocked Status = "locked"
)

// Session is the per-load state machine for one device and one calendar
// day. Its notion of "today" is fixed at Begin for the session's lifetime;
// day rollover mid-session is not corrected.
type Session struct {
	store  ResultStore
	stats  StatsStore
	today  string
	status Status

	selection imposter.Selection
	result    *imposter.Result
}

// Begin initializes a session: it runs the legacy migration, fixes today's
// date from the clock, and resolves the guard state from the result store.
//
// Store read failures degrade to an open session rather than an error; the
// worst case is a replayable day, never an unplayable one.
func Begin(ctx context.Context, store ResultStore, legacy LegacyStore, stats StatsStore, clock Clock) *Session {
	// Migration must land before the first lookup is trusted.
	_ = MigrateLegacy(ctx, store, legacy)

	s := &Session{
		store:  store,
		stats:  stats,
		today:  clock.Today(),
		status: StatusOpen,
	}

	if res, ok, err := store.Get(ctx, s.today); err == nil && ok {
		s.status = StatusLocked
		s.result = &res
		s.selection = res.Selection
	}
	return s
}

// Status returns the resolved guard state.
func (s *Session) Status() Status { return s.status }

// Today returns the calendar date the session is bound to.
func (s *Session) Today() string { return s.today }

// Selection returns the current working selection (or, when locked, the
// restored one).
func (s *Session) Selection() imposter.Selection { return s.selection }

// Result returns the stored result when the session is locked.
func (s *Session) Result() (imposter.Result, bool) {
	if s.result == nil {
		return imposter.Result{}, false
	}
	return *s.result, true
}

// Toggle flips a cyclist in or out of the working selection. While locked
// it is a rejected no-op. It reports whether the id is selected afterwards.
func (s *Session) Toggle(id string) bool {
	if s.status == StatusLocked {
		return s.selection.Contains(id)
	}
	if s.selection.Contains(id) {
		next := make(imposter.Selection, 0, len(s.selection)-1)
		for _, v := range s.selection {
			if v != id {
				next = append(next, v)
			}
		}
		s.selection = next
		return false
	}
	s.selection = append(s.selection, id)
	return true
}

// Submit grades the working selection against the puzzle, persists the
// result for today, folds it into the aggregate statistics, and locks the
// session. A second submission, or one against an already-locked session,
// returns ErrLocked without writing anything.
func (s *Session) Submit(ctx context.Context, p imposter.Puzzle) (imposter.Result, imposter.Stats, error) {
	if s.status == StatusLocked {
		cur, _ := s.stats.Stats(ctx)
		if s.result != nil {
			return *s.result, cur, ErrLocked
		}
		return imposter.Result{}, cur, ErrLocked
	}

	sel := s.selection.Normalize()
	res := newResult(s.today, imposter.Score(p, sel), sel)

	if err := s.store.Put(ctx, res); err != nil {
		return imposter.Result{}, imposter.Stats{}, err
	}

	cur, err := s.stats.Stats(ctx)
	if err != nil {
		cur = imposter.NewStats()
	}
	next := cur.Apply(res.Score)
	if err := s.stats.SaveStats(ctx, next); err != nil {
		return imposter.Result{}, imposter.Stats{}, err
	}

	s.status = StatusLocked
	s.result = &res
	s.selection = sel
	return res, next, nil
}

func newResult(date string, score int, sel imposter.Selection) imposter.Result {
	if sel == nil {
		sel = imposter.Selection{}
	}
	return imposter.Result{Date: date, Score: score, Selection: sel}
}
