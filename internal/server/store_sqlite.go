package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zimmerfann/cyclingimposter/internal/imposter"
)

// SQLiteStore implements Store on the service's SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ListCyclists(ctx context.Context) ([]imposter.Cyclist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image_url, country, team, status, last_updated
		FROM cyclists
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cyclists []imposter.Cyclist
	for rows.Next() {
		c, err := scanCyclist(rows)
		if err != nil {
			return nil, err
		}
		if c.ID == "" {
			// Boundary validation: a record without identity is unusable.
			continue
		}
		cyclists = append(cyclists, c)
	}
	return cyclists, rows.Err()
}

func (s *SQLiteStore) CountCyclists(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cyclists`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) CreateCyclist(ctx context.Context, c imposter.Cyclist) (imposter.Cyclist, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cyclists (id, name, image_url, country, team, status, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.ImageURL, c.Country, c.Team, string(c.Status), c.LastUpdated)
	if err != nil {
		return imposter.Cyclist{}, err
	}
	return c, nil
}

func (s *SQLiteStore) UpdateCyclist(ctx context.Context, c imposter.Cyclist) (imposter.Cyclist, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE cyclists
		SET name = ?, image_url = ?, country = ?, team = ?, status = ?, last_updated = ?
		WHERE id = ?
	`, c.Name, c.ImageURL, c.Country, c.Team, string(c.Status), c.LastUpdated, c.ID)
	if err != nil {
		return imposter.Cyclist{}, err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return imposter.Cyclist{}, ErrNotFound
	}
	return c, nil
}

func (s *SQLiteStore) DeleteCyclist(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cyclists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) PuzzleForDate(ctx context.Context, date string) (imposter.Puzzle, error) {
	var p imposter.Puzzle
	var slotsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, statement, slots FROM puzzles WHERE date = ?
	`, date).Scan(&p.ID, &p.Date, &p.Statement, &slotsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return imposter.Puzzle{}, ErrNotFound
	}
	if err != nil {
		return imposter.Puzzle{}, err
	}

	if err := json.Unmarshal([]byte(slotsJSON), &p.Slots); err != nil {
		return imposter.Puzzle{}, fmt.Errorf("decoding slots for %s: %w", date, err)
	}
	return p, nil
}

func (s *SQLiteStore) UpsertPuzzle(ctx context.Context, p imposter.Puzzle) (imposter.Puzzle, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	slotsJSON, err := json.Marshal(p.Slots)
	if err != nil {
		return imposter.Puzzle{}, fmt.Errorf("encoding slots: %w", err)
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO puzzles (id, date, statement, slots)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			statement = excluded.statement,
			slots = excluded.slots
		RETURNING id
	`, p.ID, p.Date, p.Statement, string(slotsJSON)).Scan(&id)
	if err != nil {
		return imposter.Puzzle{}, err
	}
	p.ID = id
	return p, nil
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions DEFAULT VALUES
		RETURNING id
	`).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) AdminSessionExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM admin_sessions WHERE id = ?
	`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id)
	return err
}

func scanCyclist(rows *sql.Rows) (imposter.Cyclist, error) {
	var c imposter.Cyclist
	var status string
	if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.Country, &c.Team, &status, &c.LastUpdated); err != nil {
		return imposter.Cyclist{}, err
	}
	c.Status = imposter.CyclistStatus(status)
	return c, nil
}
