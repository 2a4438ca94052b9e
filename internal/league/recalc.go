package league

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/tclausen/backnine/internal/models"
)

// RecordStore is the slice of storage the recalculation needs. Reads may
// reflect different points in time per table; ComputeHandicaps tolerates
// such non-atomic snapshots by skipping orphaned records.
type RecordStore interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListScores(ctx context.Context) ([]models.Score, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ReplaceHandicaps(ctx context.Context, handicaps []models.Handicap) error
}

// Recalculate regenerates every handicap row from the full current score
// set. It is never incremental: a deleted early-season score shifts which
// rounds fall inside a rolling window for every later week, so the only
// correct policy is to recompute from scratch. Returns the number of
// entities that received a handicap.
func Recalculate(ctx context.Context, store RecordStore, cfg Config) (int, error) {
	teams, err := store.ListTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading teams: %w", err)
	}
	scores, err := store.ListScores(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading scores: %w", err)
	}
	courses, err := store.ListCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading courses: %w", err)
	}

	computed, err := ComputeHandicaps(teams, scores, courses, cfg)
	if err != nil {
		return 0, fmt.Errorf("computing handicaps: %w", err)
	}

	rows := make([]models.Handicap, 0, len(computed))
	for entity, rec := range computed {
		rows = append(rows, models.Handicap{
			Entity:        string(entity),
			HandicapIndex: rec.HandicapIndex,
			RoundsPlayed:  rec.RoundsPlayed,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Entity < rows[j].Entity })

	if err := store.ReplaceHandicaps(ctx, rows); err != nil {
		return 0, fmt.Errorf("persisting handicaps: %w", err)
	}

	log.Ctx(ctx).Info().
		Int("entities", len(rows)).
		Int("scores", len(scores)).
		Str("window", string(cfg.Window)).
		Str("subject", string(cfg.Subject)).
		Msg("Handicaps recalculated")
	return len(rows), nil
}

// HandicapsByEntity reindexes persisted handicap rows for the ranking and
// conversion paths.
func HandicapsByEntity(rows []models.Handicap) map[EntityID]HandicapRecord {
	out := make(map[EntityID]HandicapRecord, len(rows))
	for _, h := range rows {
		out[EntityID(h.Entity)] = HandicapRecord{
			HandicapIndex: h.HandicapIndex,
			RoundsPlayed:  h.RoundsPlayed,
		}
	}
	return out
}
