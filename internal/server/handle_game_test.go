package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zimmerfann/cyclingimposter/internal/database"
	"github.com/zimmerfann/cyclingimposter/internal/game"
	"github.com/zimmerfann/cyclingimposter/internal/migrations"
)

const testDate = "2024-05-01"

// newTestRouter spins up the full route tree on an in-memory database with
// a pinned calendar date.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := NewSQLiteStore(db)
	if err := Seed(ctx, slog.Default(), store); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	clock := game.Clock(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	})

	r := chi.NewRouter()
	addRoutes(r, slog.Default(), Options{
		DB:    db,
		Store: store,
		Clock: clock,
	}, newAdminCreds("gogigi", "GoGigi1"))
	return r
}

// do sends a request carrying the given cookies and returns the recorder.
func do(t *testing.T, r http.Handler, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookiesOf(w *httptest.ResponseRecorder) []*http.Cookie {
	return (&http.Response{Header: w.Header()}).Cookies()
}

func TestPuzzleTodayFallsBackToDefault(t *testing.T) {
	r := newTestRouter(t)

	// Nothing is scheduled for the pinned date, so the built-in puzzle
	// must come back: the game is never without a grid.
	w := do(t, r, http.MethodGet, "/api/puzzle/today", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp PuzzleResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.Date != testDate {
		t.Errorf("date = %q, want %q", resp.Date, testDate)
	}
	if resp.Statement == "" {
		t.Error("expected a non-empty statement")
	}
	if len(resp.Riders) != 8 {
		t.Fatalf("expected 8 riders, got %d", len(resp.Riders))
	}

	seen := make(map[string]bool)
	for _, rider := range resp.Riders {
		if rider.ID == "" || rider.Name == "" {
			t.Errorf("rider missing id or name: %+v", rider)
		}
		if seen[rider.ID] {
			t.Errorf("duplicate rider id %q", rider.ID)
		}
		seen[rider.ID] = true
	}
}

func TestPuzzleTodayHidesAnswerKey(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/puzzle/today", nil, nil)

	var raw struct {
		Riders []map[string]any `json:"riders"`
	}
	json.Unmarshal(w.Body.Bytes(), &raw)

	for _, rider := range raw.Riders {
		if _, ok := rider["isImposter"]; ok {
			t.Fatal("rider card leaks the imposter flag")
		}
	}
}

func TestGameFlow(t *testing.T) {
	r := newTestRouter(t)

	// Fresh device: state is open, a device cookie is minted.
	w := do(t, r, http.MethodGet, "/api/game/state", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	device := cookiesOf(w)
	if len(device) == 0 {
		t.Fatal("state: expected a device cookie")
	}

	var state GameStateResponse
	json.NewDecoder(w.Body).Decode(&state)
	if state.Status != "open" {
		t.Fatalf("state: expected open, got %q", state.Status)
	}
	if state.Date != testDate {
		t.Errorf("state: date = %q, want %q", state.Date, testDate)
	}
	if state.Stats.Played != 0 {
		t.Errorf("state: expected 0 played, got %d", state.Stats.Played)
	}

	// The default puzzle's sole imposter is c5: marking exactly him is a
	// perfect round.
	w = do(t, r, http.MethodPost, "/api/game/submit", SubmitRequest{Selection: []string{"c5"}}, device)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var sub SubmitResponse
	json.NewDecoder(w.Body).Decode(&sub)
	if sub.Score != 8 {
		t.Errorf("submit: score = %d, want 8", sub.Score)
	}
	if sub.MaxScore != 8 {
		t.Errorf("submit: maxScore = %d, want 8", sub.MaxScore)
	}
	if len(sub.Reveal) != 8 {
		t.Errorf("submit: expected 8 reveal entries, got %d", len(sub.Reveal))
	}
	for _, slot := range sub.Reveal {
		if !slot.Correct {
			t.Errorf("submit: slot %q graded wrong on a perfect round", slot.CyclistID)
		}
	}
	if sub.Stats.Played != 1 || sub.Stats.Streak != 1 {
		t.Errorf("submit: stats = %+v, want played=1 streak=1", sub.Stats)
	}
	if sub.Stats.History[8] != 1 {
		t.Errorf("submit: history[8] = %d, want 1", sub.Stats.History[8])
	}

	// Same day, same device: the day is locked.
	w = do(t, r, http.MethodPost, "/api/game/submit", SubmitRequest{Selection: []string{"c1"}}, device)
	if w.Code != http.StatusConflict {
		t.Fatalf("second submit: expected 409, got %d", w.Code)
	}

	// Reload restores the stored outcome.
	w = do(t, r, http.MethodGet, "/api/game/state", nil, device)
	json.NewDecoder(w.Body).Decode(&state)
	if state.Status != "locked" {
		t.Fatalf("reload: expected locked, got %q", state.Status)
	}
	if state.Score == nil || *state.Score != 8 {
		t.Errorf("reload: expected restored score 8, got %v", state.Score)
	}
	if len(state.Selection) != 1 || state.Selection[0] != "c5" {
		t.Errorf("reload: selection = %v, want [c5]", state.Selection)
	}
	if state.Stats.Played != 1 {
		t.Errorf("reload: stats played = %d, want 1", state.Stats.Played)
	}

	// Share text reflects the day's score and the streak.
	w = do(t, r, http.MethodGet, "/api/game/share", nil, device)
	if w.Code != http.StatusOK {
		t.Fatalf("share: expected 200, got %d", w.Code)
	}

	var share ShareResponse
	json.NewDecoder(w.Body).Decode(&share)
	if !strings.Contains(share.Text, "8/8") {
		t.Errorf("share: text missing score: %q", share.Text)
	}
	if !strings.Contains(share.Text, "Streak: 1") {
		t.Errorf("share: text missing streak: %q", share.Text)
	}
}

func TestSubmitDuplicateSelectionIDs(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/game/submit",
		SubmitRequest{Selection: []string{"c5", "c5", "c5"}}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var sub SubmitResponse
	json.NewDecoder(w.Body).Decode(&sub)
	if sub.Score != 8 {
		t.Errorf("score = %d, want 8 (duplicates must collapse)", sub.Score)
	}
}

func TestDevicesAreIndependent(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/game/submit", SubmitRequest{Selection: []string{"c5"}}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first device: expected 200, got %d", w.Code)
	}

	// A different browser gets a fresh day.
	w = do(t, r, http.MethodPost, "/api/game/submit", SubmitRequest{Selection: []string{"c1"}}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second device: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var sub SubmitResponse
	json.NewDecoder(w.Body).Decode(&sub)
	// One innocent rider marked and the real imposter missed: two slots wrong.
	if sub.Score != 6 {
		t.Errorf("second device: score = %d, want 6", sub.Score)
	}
	if sub.Stats.Played != 1 {
		t.Errorf("second device: played = %d, want 1", sub.Stats.Played)
	}
}

func TestShareBeforePlaying(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/game/share", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGlobalStatsDisabledWithoutRedis(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/puzzle/today/global", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp GlobalStatsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Date != testDate {
		t.Errorf("date = %q, want %q", resp.Date, testDate)
	}
	if len(resp.Distribution) != 0 {
		t.Errorf("expected empty distribution, got %v", resp.Distribution)
	}
}
