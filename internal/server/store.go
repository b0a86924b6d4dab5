package server

import (
	"context"
	"errors"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

var ErrNotFound = errors.New("not found")

// Store is the data-access surface for the catalog (cyclists and scheduled
// puzzles) and for admin sessions. The game core consumes only the read
// paths; the admin workflow consumes everything.
type Store interface {
	ListCyclists(ctx context.Context) ([]imposter.Cyclist, error)
	CountCyclists(ctx context.Context) (int, error)
	CreateCyclist(ctx context.Context, c imposter.Cyclist) (imposter.Cyclist, error)
	UpdateCyclist(ctx context.Context, c imposter.Cyclist) (imposter.Cyclist, error)
	DeleteCyclist(ctx context.Context, id string) error

	PuzzleForDate(ctx context.Context, date string) (imposter.Puzzle, error)
	UpsertPuzzle(ctx context.Context, p imposter.Puzzle) (imposter.Puzzle, error)

	CreateAdminSession(ctx context.Context) (string, error)
	AdminSessionExists(ctx context.Context, id string) (bool, error)
	DeleteAdminSession(ctx context.Context, id string) error
}
