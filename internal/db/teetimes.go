// internal/db/teetimes.go
package db

import (
	"context"
	"fmt"

	"github.com/tclausen/backnine/internal/models"
)

func (s *Store) ListTeeTimes(ctx context.Context) ([]models.TeeTime, error) {
	return s.queryTeeTimes(ctx,
		"SELECT id, week, team_id, day, time FROM tee_times ORDER BY week, day, time")
}

func (s *Store) ListTeeTimesByWeek(ctx context.Context, week int) ([]models.TeeTime, error) {
	return s.queryTeeTimes(ctx,
		s.bind("SELECT id, week, team_id, day, time FROM tee_times WHERE week = ? ORDER BY day, time"), week)
}

func (s *Store) CreateTeeTime(ctx context.Context, t models.TeeTime) (int64, error) {
	s.teeTimesMu.Lock()
	defer s.teeTimesMu.Unlock()

	id, err := s.nextID(ctx, "tee_times")
	if err != nil {
		return 0, fmt.Errorf("allocating tee time id: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		s.bind("INSERT INTO tee_times (id, week, team_id, day, time) VALUES (?, ?, ?, ?, ?)"),
		id, t.Week, t.TeamID, t.Day, t.Time)
	if err != nil {
		return 0, fmt.Errorf("creating tee time: %w", err)
	}
	return id, nil
}

func (s *Store) DeleteTeeTime(ctx context.Context, id int64) error {
	s.teeTimesMu.Lock()
	defer s.teeTimesMu.Unlock()

	res, err := s.db.ExecContext(ctx, s.bind("DELETE FROM tee_times WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting tee time %d: %w", id, err)
	}
	return requireRow(res, "tee time")
}

func (s *Store) queryTeeTimes(ctx context.Context, query string, args ...any) ([]models.TeeTime, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tee times: %w", err)
	}
	defer rows.Close()

	var teeTimes []models.TeeTime
	for rows.Next() {
		var t models.TeeTime
		if err := rows.Scan(&t.ID, &t.Week, &t.TeamID, &t.Day, &t.Time); err != nil {
			return nil, fmt.Errorf("scanning tee time: %w", err)
		}
		teeTimes = append(teeTimes, t)
	}
	return teeTimes, rows.Err()
}
