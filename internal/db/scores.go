// internal/db/scores.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tclausen/backnine/internal/models"
)

// ListScores returns all rounds, newest first (the order the dashboard's
// round history shows them in).
func (s *Store) ListScores(ctx context.Context) ([]models.Score, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, team_id, course_name, week, date, nine, player1_score, player2_score, team_total FROM scores ORDER BY date DESC, week DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing scores: %w", err)
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

func (s *Store) GetScore(ctx context.Context, id int64) (models.Score, error) {
	row := s.db.QueryRowContext(ctx,
		s.bind("SELECT id, team_id, course_name, week, date, nine, player1_score, player2_score, team_total FROM scores WHERE id = ?"), id)
	sc, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Score{}, ErrNotFound
	}
	if err != nil {
		return models.Score{}, fmt.Errorf("getting score %d: %w", id, err)
	}
	return sc, nil
}

func (s *Store) CreateScore(ctx context.Context, sc models.Score) (int64, error) {
	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()

	id, err := s.nextID(ctx, "scores")
	if err != nil {
		return 0, fmt.Errorf("allocating score id: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		s.bind("INSERT INTO scores (id, team_id, course_name, week, date, nine, player1_score, player2_score, team_total) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		id, sc.TeamID, sc.CourseName, sc.Week, sc.Date, sc.Nine, nullableInt(sc.Player1Score), nullableInt(sc.Player2Score), sc.TeamTotal)
	if err != nil {
		return 0, fmt.Errorf("creating score: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateScore(ctx context.Context, sc models.Score) error {
	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()

	res, err := s.db.ExecContext(ctx,
		s.bind("UPDATE scores SET team_id = ?, course_name = ?, week = ?, date = ?, nine = ?, player1_score = ?, player2_score = ?, team_total = ? WHERE id = ?"),
		sc.TeamID, sc.CourseName, sc.Week, sc.Date, sc.Nine, nullableInt(sc.Player1Score), nullableInt(sc.Player2Score), sc.TeamTotal, sc.ID)
	if err != nil {
		return fmt.Errorf("updating score %d: %w", sc.ID, err)
	}
	return requireRow(res, "score")
}

func (s *Store) DeleteScore(ctx context.Context, id int64) error {
	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()

	res, err := s.db.ExecContext(ctx, s.bind("DELETE FROM scores WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting score %d: %w", id, err)
	}
	return requireRow(res, "score")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScore(row rowScanner) (models.Score, error) {
	var sc models.Score
	var p1, p2 sql.NullInt64
	if err := row.Scan(&sc.ID, &sc.TeamID, &sc.CourseName, &sc.Week, &sc.Date, &sc.Nine, &p1, &p2, &sc.TeamTotal); err != nil {
		return models.Score{}, err
	}
	if p1.Valid {
		v := int(p1.Int64)
		sc.Player1Score = &v
	}
	if p2.Valid {
		v := int(p2.Int64)
		sc.Player2Score = &v
	}
	return sc, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
