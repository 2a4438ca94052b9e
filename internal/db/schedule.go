// internal/db/schedule.go
package db

import (
	"context"
	"fmt"

	"github.com/tclausen/backnine/internal/models"
)

func (s *Store) ListSchedule(ctx context.Context) ([]models.ScheduleWeek, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT week, date, course_name, nine FROM schedule ORDER BY week")
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}
	defer rows.Close()

	var weeks []models.ScheduleWeek
	for rows.Next() {
		var w models.ScheduleWeek
		if err := rows.Scan(&w.Week, &w.Date, &w.CourseName, &w.Nine); err != nil {
			return nil, fmt.Errorf("scanning schedule week: %w", err)
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// UpsertScheduleWeek writes one week's slot, inserting or overwriting.
func (s *Store) UpsertScheduleWeek(ctx context.Context, w models.ScheduleWeek) error {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	res, err := s.db.ExecContext(ctx,
		s.bind("UPDATE schedule SET date = ?, course_name = ?, nine = ? WHERE week = ?"),
		w.Date, w.CourseName, w.Nine, w.Week)
	if err != nil {
		return fmt.Errorf("updating schedule week %d: %w", w.Week, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		s.bind("INSERT INTO schedule (week, date, course_name, nine) VALUES (?, ?, ?, ?)"),
		w.Week, w.Date, w.CourseName, w.Nine)
	if err != nil {
		return fmt.Errorf("inserting schedule week %d: %w", w.Week, err)
	}
	return nil
}
