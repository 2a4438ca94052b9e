// internal/api/teams/handlers.go
package teams

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tclausen/backnine/internal/api/apiutil"
	appdb "github.com/tclausen/backnine/internal/db"
	"github.com/tclausen/backnine/internal/models"
)

const (
	queryTimeout  = 5 * time.Second
	teamIDPathKey = "id"
)

var store *appdb.Store

type teamRequest struct {
	Name          string `json:"name"`
	Player1       string `json:"player1"`
	Player2       string `json:"player2"`
	PaymentStatus string `json:"paymentStatus"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	store = database.Store
}

// GET /api/v1/teams
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	teams, err := store.ListTeams(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, teams)
}

// GET /api/v1/teams/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	team, err := store.GetTeam(ctx, id)
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to load team")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load team")
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, team)
}

// POST /api/v1/teams
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	req, ok := decodeTeamRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := store.CreateTeam(ctx, models.Team{
		Name:          req.Name,
		Player1:       req.Player1,
		Player2:       req.Player2,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create team")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to create team")
		return
	}
	logger.Info().Int64("team_id", id).Msg("Team created")
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// PUT /api/v1/teams/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}
	req, ok := decodeTeamRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.UpdateTeam(ctx, models.Team{
		ID:            id,
		Name:          req.Name,
		Player1:       req.Player1,
		Player2:       req.Player2,
		PaymentStatus: req.PaymentStatus,
	})
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to update team")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to update team")
		return
	}
	apiutil.Message(w, http.StatusOK, "Team updated successfully")
}

// DELETE /api/v1/teams/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.DeleteTeam(ctx, id)
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to delete team")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to delete team")
		return
	}
	logger.Info().Int64("team_id", id).Msg("Team deleted")
	apiutil.Message(w, http.StatusOK, "Team deleted successfully")
}

func teamIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.PathValue(teamIDPathKey))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Invalid team id")
		return 0, false
	}
	return id, true
}

func decodeTeamRequest(w http.ResponseWriter, r *http.Request) (teamRequest, bool) {
	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return teamRequest{}, false
	}
	if strings.TrimSpace(req.Player1) == "" || strings.TrimSpace(req.Player2) == "" {
		apiutil.Error(w, http.StatusBadRequest, "Both players are required")
		return teamRequest{}, false
	}
	return req, true
}
