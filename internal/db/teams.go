// internal/db/teams.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tclausen/backnine/internal/models"
)

func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, player1, player2, payment_status FROM teams ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Player1, &t.Player2, &t.PaymentStatus); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *Store) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	var t models.Team
	err := s.db.QueryRowContext(ctx,
		s.bind("SELECT id, name, player1, player2, payment_status FROM teams WHERE id = ?"), id).
		Scan(&t.ID, &t.Name, &t.Player1, &t.Player2, &t.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, ErrNotFound
	}
	if err != nil {
		return models.Team{}, fmt.Errorf("getting team %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) CreateTeam(ctx context.Context, t models.Team) (int64, error) {
	s.teamsMu.Lock()
	defer s.teamsMu.Unlock()

	id, err := s.nextID(ctx, "teams")
	if err != nil {
		return 0, fmt.Errorf("allocating team id: %w", err)
	}
	if t.PaymentStatus == "" {
		t.PaymentStatus = "Not Paid"
	}
	_, err = s.db.ExecContext(ctx,
		s.bind("INSERT INTO teams (id, name, player1, player2, payment_status) VALUES (?, ?, ?, ?, ?)"),
		id, t.Name, t.Player1, t.Player2, t.PaymentStatus)
	if err != nil {
		return 0, fmt.Errorf("creating team: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateTeam(ctx context.Context, t models.Team) error {
	s.teamsMu.Lock()
	defer s.teamsMu.Unlock()

	if t.PaymentStatus == "" {
		t.PaymentStatus = "Not Paid"
	}
	res, err := s.db.ExecContext(ctx,
		s.bind("UPDATE teams SET name = ?, player1 = ?, player2 = ?, payment_status = ? WHERE id = ?"),
		t.Name, t.Player1, t.Player2, t.PaymentStatus, t.ID)
	if err != nil {
		return fmt.Errorf("updating team %d: %w", t.ID, err)
	}
	return requireRow(res, "team")
}

func (s *Store) DeleteTeam(ctx context.Context, id int64) error {
	s.teamsMu.Lock()
	defer s.teamsMu.Unlock()

	res, err := s.db.ExecContext(ctx, s.bind("DELETE FROM teams WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting team %d: %w", id, err)
	}
	return requireRow(res, "team")
}

// requireRow maps a zero-row mutation to ErrNotFound.
func requireRow(res sql.Result, kind string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", kind, ErrNotFound)
	}
	return nil
}
