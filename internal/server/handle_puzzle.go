package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zimmerfann/cyclingimposter/internal/game"
	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// RiderCard is one face-up profile on the daily grid. The imposter flag is
// deliberately absent: the answer key stays server-side until submission.
type RiderCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Country  string `json:"country"`
	ImageURL string `json:"imageUrl"`
	Status   string `json:"status"`
}

type PuzzleResponse struct {
	Date      string      `json:"date"`
	Statement string      `json:"statement"`
	Riders    []RiderCard `json:"riders"`
}

// GlobalStatsResponse maps score to how many devices landed on it today.
type GlobalStatsResponse struct {
	Date         string      `json:"date"`
	Distribution map[int]int `json:"distribution"`
}

func handlePuzzleToday(logger *slog.Logger, store Store, clock game.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := clock.Today()
		puzzle := resolveTodayPuzzle(r.Context(), logger, store, today)

		writeJSON(w, http.StatusOK, PuzzleResponse{
			Date:      today,
			Statement: puzzle.Statement,
			Riders:    riderCards(r.Context(), store, puzzle),
		})
	}
}

// resolveTodayPuzzle fetches the puzzle scheduled for today, falling back
// to the built-in default when none exists or the fetch fails. A fetch
// failure is logged, never surfaced: the game must always be playable.
func resolveTodayPuzzle(ctx context.Context, logger *slog.Logger, store Store, today string) imposter.Puzzle {
	p, err := store.PuzzleForDate(ctx, today)
	if errors.Is(err, ErrNotFound) {
		return imposter.DefaultPuzzle()
	}
	if err != nil {
		logger.Warn("falling back to default puzzle", "date", today, "error", err)
		return imposter.DefaultPuzzle()
	}
	return p
}

// riderCards resolves the puzzle's slot ids against the catalog. A missing
// rider degrades to a placeholder card instead of breaking the grid.
func riderCards(ctx context.Context, store Store, p imposter.Puzzle) []RiderCard {
	byID := make(map[string]imposter.Cyclist)
	if cyclists, err := store.ListCyclists(ctx); err == nil {
		for _, c := range cyclists {
			byID[c.ID] = c
		}
	}
	if len(byID) == 0 {
		for _, c := range imposter.DefaultCyclists() {
			byID[c.ID] = c
		}
	}

	cards := make([]RiderCard, 0, len(p.Slots))
	for _, slot := range p.Slots {
		c, ok := byID[slot.CyclistID]
		if !ok {
			cards = append(cards, RiderCard{ID: slot.CyclistID, Name: "Unknown rider"})
			continue
		}
		cards = append(cards, RiderCard{
			ID:       c.ID,
			Name:     c.Name,
			Team:     c.Team,
			Country:  c.Country,
			ImageURL: c.ImageURL,
			Status:   string(c.Status),
		})
	}
	return cards
}

func handleGlobalStats(logger *slog.Logger, rdb *redis.Client, clock game.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := clock.Today()
		resp := GlobalStatsResponse{Date: today, Distribution: map[int]int{}}

		if rdb == nil {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		raw, err := rdb.HGetAll(ctx, globalDistKey(today)).Result()
		if err != nil {
			logger.Warn("reading global distribution", "error", err)
			writeJSON(w, http.StatusOK, resp)
			return
		}

		for field, value := range raw {
			score, err := strconv.Atoi(field)
			if err != nil || score < 0 || score > imposter.MaxScore {
				continue
			}
			count, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			resp.Distribution[score] = count
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func globalDistKey(date string) string {
	return "imposter:dist:" + date
}
