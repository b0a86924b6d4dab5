package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// PuzzleRequest is the admin body for scheduling a puzzle on a date.
type PuzzleRequest struct {
	Statement string          `json:"statement"`
	Slots     []imposter.Slot `json:"slots"`
}

func handleAdminGetPuzzle(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		if !validDate(date) {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		p, err := store.PuzzleForDate(r.Context(), date)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "no puzzle scheduled for this date")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleAdminUpsertPuzzle(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		if !validDate(date) {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		var req PuzzleRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Statement = strings.TrimSpace(req.Statement)
		if req.Statement == "" {
			writeError(w, http.StatusBadRequest, "statement is required")
			return
		}
		if msg := validateSlots(req.Slots); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		p, err := store.UpsertPuzzle(r.Context(), imposter.Puzzle{
			Date:      date,
			Statement: req.Statement,
			Slots:     req.Slots,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func validateSlots(slots []imposter.Slot) string {
	if len(slots) != imposter.SlotCount {
		return "a puzzle needs exactly 8 slots"
	}
	seen := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		if slot.CyclistID == "" {
			return "every slot needs a cyclistId"
		}
		if _, dup := seen[slot.CyclistID]; dup {
			return "slot cyclist ids must be unique"
		}
		seen[slot.CyclistID] = struct{}{}
	}
	return ""
}

func validDate(date string) bool {
	_, err := time.Parse(imposter.DateFormat, date)
	return err == nil
}
