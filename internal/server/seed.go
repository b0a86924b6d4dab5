package server

import (
	"context"
	"log/slog"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// Seed fills an empty catalog with the default riders and the default
// puzzle. Idempotent: does nothing once any cyclist exists.
func Seed(ctx context.Context, logger *slog.Logger, store Store) error {
	count, err := store.CountCyclists(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, c := range imposter.DefaultCyclists() {
		if _, err := store.CreateCyclist(ctx, c); err != nil {
			return err
		}
	}
	if _, err := store.UpsertPuzzle(ctx, imposter.DefaultPuzzle()); err != nil {
		return err
	}

	logger.Info("catalog seeded with default riders and puzzle")
	return nil
}
