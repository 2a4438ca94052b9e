// internal/api/handicaps/handlers.go
package handicaps

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tclausen/backnine/internal/api/apiutil"
	appdb "github.com/tclausen/backnine/internal/db"
	"github.com/tclausen/backnine/internal/league"
	"github.com/tclausen/backnine/internal/models"
)

const (
	queryTimeout  = 5 * time.Second
	recalcTimeout = 15 * time.Second
)

var (
	store    *appdb.Store
	policies league.Config
)

type handicapRequest struct {
	Entity        string  `json:"entity"`
	HandicapIndex float64 `json:"handicapIndex"`
	RoundsPlayed  int     `json:"roundsPlayed"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, cfg league.Config) {
	if database == nil {
		return
	}
	store = database.Store
	policies = cfg
}

// GET /api/v1/handicaps
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	handicaps, err := store.ListHandicaps(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list handicaps")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load handicaps")
		return
	}
	if handicaps == nil {
		handicaps = []models.Handicap{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, handicaps)
}

// POST /api/v1/handicaps
//
// Manual override; the next recalculation will overwrite it. Kept because
// the league occasionally corrects an index by hand after a scoring dispute.
func HandleUpsert(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req handicapRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Entity) == "" {
		apiutil.Error(w, http.StatusBadRequest, "Entity is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.UpsertHandicap(ctx, models.Handicap{
		Entity:        req.Entity,
		HandicapIndex: req.HandicapIndex,
		RoundsPlayed:  req.RoundsPlayed,
	})
	if err != nil {
		logger.Error().Err(err).Str("entity", req.Entity).Msg("Failed to save handicap")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to save handicap")
		return
	}
	apiutil.Message(w, http.StatusOK, "Handicap saved successfully")
}

// POST /api/v1/handicaps/recalculate
func HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), recalcTimeout)
	defer cancel()

	if _, err := league.Recalculate(ctx, store, policies); err != nil {
		logger.Error().Err(err).Msg("Handicap recalculation failed")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to recalculate handicaps")
		return
	}

	handicaps, err := store.ListHandicaps(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list handicaps after recalculation")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load handicaps")
		return
	}
	if handicaps == nil {
		handicaps = []models.Handicap{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Handicaps recalculated successfully",
		"handicaps": handicaps,
	})
}
