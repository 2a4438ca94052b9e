// internal/api/standings/handlers.go
package standings

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tclausen/backnine/internal/api/apiutil"
	appdb "github.com/tclausen/backnine/internal/db"
	"github.com/tclausen/backnine/internal/league"
)

const queryTimeout = 5 * time.Second

var (
	store           *appdb.Store
	defaultStrategy league.RankingStrategy
)

// InitHandlers must be called during server startup before handling
// requests. strategy is the deployment's configured leaderboard ordering.
func InitHandlers(database *appdb.DB, strategy league.RankingStrategy) {
	if database == nil {
		return
	}
	store = database.Store
	defaultStrategy = strategy
}

// GET /api/v1/standings?strategy=raw|net
//
// The strategy query parameter overrides the configured default so the
// dashboard can show both boards side by side.
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	strategy := defaultStrategy
	if raw := r.URL.Query().Get("strategy"); raw != "" {
		strategy = league.RankingStrategy(raw)
		if !strategy.Valid() {
			apiutil.Error(w, http.StatusBadRequest, "Unknown ranking strategy")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	teams, err := store.ListTeams(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load standings")
		return
	}
	scores, err := store.ListScores(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list scores")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load standings")
		return
	}

	var handicaps map[league.EntityID]league.HandicapRecord
	if strategy == league.RankNet {
		rows, err := store.ListHandicaps(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to list handicaps")
			apiutil.Error(w, http.StatusInternalServerError, "Failed to load standings")
			return
		}
		handicaps = league.HandicapsByEntity(rows)
	}

	rows, err := league.RankStandings(teams, scores, handicaps, strategy)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to rank standings")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to rank standings")
		return
	}
	if rows == nil {
		rows = []league.Standing{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"strategy":  strategy,
		"standings": rows,
	})
}
