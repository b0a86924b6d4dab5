package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// DeviceStore is the SQLite-backed persistence for one device, identified
// by the opaque device id carried in the player's cookie. It implements
// ResultStore, StatsStore, and LegacyStore.
type DeviceStore struct {
	db     *sql.DB
	device string
}

func NewDeviceStore(db *sql.DB, device string) *DeviceStore {
	return &DeviceStore{db: db, device: device}
}

func (s *DeviceStore) Get(ctx context.Context, date string) (imposter.Result, bool, error) {
	var score int
	var selJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT score, selection FROM results
		WHERE device_id = ? AND date = ?
	`, s.device, date).Scan(&score, &selJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return imposter.Result{}, false, nil
	}
	if err != nil {
		return imposter.Result{}, false, err
	}

	var sel imposter.Selection
	if err := json.Unmarshal([]byte(selJSON), &sel); err != nil {
		// Corrupt record reads as absent so today stays playable.
		return imposter.Result{}, false, nil
	}
	return newResult(date, score, sel), true, nil
}

func (s *DeviceStore) Put(ctx context.Context, res imposter.Result) error {
	selJSON, err := json.Marshal(res.Selection)
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (device_id, date, score, selection)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (device_id, date) DO UPDATE SET
			score = excluded.score,
			selection = excluded.selection
	`, s.device, res.Date, res.Score, string(selJSON))
	return err
}

func (s *DeviceStore) HasPlayed(ctx context.Context, date string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM results WHERE device_id = ? AND date = ?
	`, s.device, date).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *DeviceStore) Stats(ctx context.Context) (imposter.Stats, error) {
	var played, streak int
	var historyJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT played, streak, history FROM device_stats
		WHERE device_id = ?
	`, s.device).Scan(&played, &streak, &historyJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return imposter.NewStats(), nil
	}
	if err != nil {
		return imposter.NewStats(), err
	}

	stats := imposter.NewStats()
	stats.Played = played
	stats.Streak = streak

	var history map[int]int
	if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
		// Corrupt histogram degrades to empty, spec-valid state.
		return imposter.NewStats(), nil
	}
	for score, count := range history {
		if score >= 0 && score <= imposter.MaxScore {
			stats.History[score] = count
		}
	}
	return stats, nil
}

func (s *DeviceStore) SaveStats(ctx context.Context, stats imposter.Stats) error {
	historyJSON, err := json.Marshal(stats.History)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO device_stats (device_id, played, streak, history)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (device_id) DO UPDATE SET
			played = excluded.played,
			streak = excluded.streak,
			history = excluded.history
	`, s.device, stats.Played, stats.Streak, string(historyJSON))
	return err
}

// Last reads the device's legacy single-slot record. Missing fields come
// back as zero values so the migration can decide whether the record is
// usable; the row itself is never deleted here.
func (s *DeviceStore) Last(ctx context.Context) (LegacyRecord, bool, error) {
	var date sql.NullString
	var score sql.NullInt64
	var selJSON sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT last_date, last_score, last_selection FROM legacy_plays
		WHERE device_id = ?
	`, s.device).Scan(&date, &score, &selJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return LegacyRecord{}, false, nil
	}
	if err != nil {
		return LegacyRecord{}, false, err
	}

	rec := LegacyRecord{Date: date.String}
	if score.Valid {
		v := int(score.Int64)
		rec.Score = &v
	}
	if selJSON.Valid && selJSON.String != "" {
		// A broken selection loses only the picks, not the score.
		_ = json.Unmarshal([]byte(selJSON.String), &rec.Selection)
	}
	return rec, true, nil
}
