package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zimmerfann/cyclingimposter/internal/game"
	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

type GameStateResponse struct {
	Status    string                `json:"status"`
	Date      string                `json:"date"`
	Score     *int                  `json:"score,omitempty"`
	Selection []string              `json:"selection,omitempty"`
	Reveal    []imposter.SlotResult `json:"reveal,omitempty"`
	Stats     imposter.Stats        `json:"stats"`
}

type SubmitRequest struct {
	Selection []string `json:"selection"`
}

type SubmitResponse struct {
	Date     string                `json:"date"`
	Score    int                   `json:"score"`
	MaxScore int                   `json:"maxScore"`
	Reveal   []imposter.SlotResult `json:"reveal"`
	Stats    imposter.Stats        `json:"stats"`
}

type ShareResponse struct {
	Text string `json:"text"`
}

func handleGameState(logger *slog.Logger, db *sql.DB, store Store, clock game.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := game.NewDeviceStore(db, deviceFrom(r))
		sess := game.Begin(r.Context(), ds, ds, ds, clock)

		stats, err := ds.Stats(r.Context())
		if err != nil {
			stats = imposter.NewStats()
		}

		resp := GameStateResponse{
			Status: string(sess.Status()),
			Date:   sess.Today(),
			Stats:  stats,
		}

		if res, ok := sess.Result(); ok {
			puzzle := resolveTodayPuzzle(r.Context(), logger, store, sess.Today())
			resp.Score = &res.Score
			resp.Selection = res.Selection
			resp.Reveal = imposter.Reveal(puzzle, res.Selection)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSubmit(logger *slog.Logger, db *sql.DB, store Store, clock game.Clock, broker *Broker, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ds := game.NewDeviceStore(db, deviceFrom(r))
		sess := game.Begin(r.Context(), ds, ds, ds, clock)

		for _, id := range imposter.Selection(req.Selection).Normalize() {
			sess.Toggle(id)
		}

		puzzle := resolveTodayPuzzle(r.Context(), logger, store, sess.Today())

		res, stats, err := sess.Submit(r.Context(), puzzle)
		if errors.Is(err, game.ErrLocked) {
			writeError(w, http.StatusConflict, "already played today")
			return
		}
		if err != nil {
			logger.Error("persisting result", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(SubmissionEvent{
			Type:   "result_submitted",
			Date:   res.Date,
			Score:  res.Score,
			Streak: stats.Streak,
		})
		recordGlobalScore(logger, rdb, res)

		writeJSON(w, http.StatusOK, SubmitResponse{
			Date:     res.Date,
			Score:    res.Score,
			MaxScore: imposter.MaxScore,
			Reveal:   imposter.Reveal(puzzle, res.Selection),
			Stats:    stats,
		})
	}
}

func handleShare(db *sql.DB, clock game.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := game.NewDeviceStore(db, deviceFrom(r))
		sess := game.Begin(r.Context(), ds, ds, ds, clock)

		res, ok := sess.Result()
		if !ok {
			writeError(w, http.StatusNotFound, "no result for today yet")
			return
		}

		stats, err := ds.Stats(r.Context())
		if err != nil {
			stats = imposter.NewStats()
		}

		writeJSON(w, http.StatusOK, ShareResponse{
			Text: imposter.ShareText(res.Score, stats.Streak),
		})
	}
}

// recordGlobalScore folds the result into the shared per-date histogram.
// Redis being down or absent only loses the community view, so failures
// are logged and swallowed.
func recordGlobalScore(logger *slog.Logger, rdb *redis.Client, res imposter.Result) {
	if rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.HIncrBy(ctx, globalDistKey(res.Date), strconv.Itoa(res.Score), 1).Err(); err != nil {
		logger.Warn("recording global score", "error", err)
	}
}
