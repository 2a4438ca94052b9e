// internal/db/handicaps.go
package db

import (
	"context"
	"fmt"

	"github.com/tclausen/backnine/internal/models"
)

func (s *Store) ListHandicaps(ctx context.Context) ([]models.Handicap, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT entity, handicap_index, rounds_played FROM handicaps ORDER BY entity")
	if err != nil {
		return nil, fmt.Errorf("listing handicaps: %w", err)
	}
	defer rows.Close()

	var handicaps []models.Handicap
	for rows.Next() {
		var h models.Handicap
		if err := rows.Scan(&h.Entity, &h.HandicapIndex, &h.RoundsPlayed); err != nil {
			return nil, fmt.Errorf("scanning handicap: %w", err)
		}
		handicaps = append(handicaps, h)
	}
	return handicaps, rows.Err()
}

// UpsertHandicap writes one handicap row, inserting or overwriting by
// entity. Used by the manual admin override endpoint.
func (s *Store) UpsertHandicap(ctx context.Context, h models.Handicap) error {
	s.handicapsMu.Lock()
	defer s.handicapsMu.Unlock()
	return s.upsertHandicapLocked(ctx, h)
}

// ReplaceHandicaps swaps the table contents for a freshly computed set.
// Entities that no longer qualify lose their row, which is how "no handicap
// yet" is represented downstream.
func (s *Store) ReplaceHandicaps(ctx context.Context, handicaps []models.Handicap) error {
	s.handicapsMu.Lock()
	defer s.handicapsMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning handicap replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM handicaps"); err != nil {
		return fmt.Errorf("clearing handicaps: %w", err)
	}
	insert := s.bind("INSERT INTO handicaps (entity, handicap_index, rounds_played) VALUES (?, ?, ?)")
	for _, h := range handicaps {
		if _, err := tx.ExecContext(ctx, insert, h.Entity, h.HandicapIndex, h.RoundsPlayed); err != nil {
			return fmt.Errorf("inserting handicap %q: %w", h.Entity, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing handicap replace: %w", err)
	}
	return nil
}

func (s *Store) upsertHandicapLocked(ctx context.Context, h models.Handicap) error {
	res, err := s.db.ExecContext(ctx,
		s.bind("UPDATE handicaps SET handicap_index = ?, rounds_played = ? WHERE entity = ?"),
		h.HandicapIndex, h.RoundsPlayed, h.Entity)
	if err != nil {
		return fmt.Errorf("updating handicap %q: %w", h.Entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		s.bind("INSERT INTO handicaps (entity, handicap_index, rounds_played) VALUES (?, ?, ?)"),
		h.Entity, h.HandicapIndex, h.RoundsPlayed)
	if err != nil {
		return fmt.Errorf("inserting handicap %q: %w", h.Entity, err)
	}
	return nil
}
