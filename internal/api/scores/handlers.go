// internal/api/scores/handlers.go
package scores

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
	"github.com/tclausen/backnine/internal/league"
	"github.com/tclausen/backnine/internal/models"
)

const (
	queryTimeout  = 5 * time.Second
	recalcTimeout = 15 * time.Second
	scoreIDPath   = "id"
)

var (
	store          *appdb.Store
	policies       league.Config
	minTriggerWeek int
)

type scoreRequest struct {
	TeamID       int64  `json:"teamId"`
	CourseName   string `json:"courseName"`
	Week         int    `json:"week"`
	Date         string `json:"date"`
	Nine         string `json:"nine"`
	Player1Score *int   `json:"player1Score"`
	Player2Score *int   `json:"player2Score"`
	TeamTotal    int    `json:"teamTotal"`
}

// InitHandlers must be called during server startup before handling
// requests. triggerWeek is the first week score writes start triggering
// handicap recalculation.
func InitHandlers(database *appdb.DB, cfg league.Config, triggerWeek int) {
	if database == nil {
		return
	}
	store = database.Store
	policies = cfg
	minTriggerWeek = triggerWeek
}

// GET /api/v1/scores
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	scores, err := store.ListScores(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list scores")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}
	if scores == nil {
		scores = []models.Score{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, scores)
}

// POST /api/v1/scores
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	req, ok := decodeScoreRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := store.CreateScore(ctx, scoreFromRequest(req, 0))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create score")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to create score")
		return
	}
	logger.Info().Int64("score_id", id).Int("week", req.Week).Msg("Score recorded")

	// Handicaps only start moving once the league has enough history.
	if req.Week >= minTriggerWeek {
		recalculate(r)
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// PUT /api/v1/scores/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, ok := scoreIDFromPath(w, r)
	if !ok {
		return
	}
	req, ok := decodeScoreRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.UpdateScore(ctx, scoreFromRequest(req, id))
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Score not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("score_id", id).Msg("Failed to update score")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to update score")
		return
	}

	if req.Week >= minTriggerWeek {
		recalculate(r)
	}
	apiutil.Message(w, http.StatusOK, "Score updated successfully")
}

// DELETE /api/v1/scores/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, ok := scoreIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.DeleteScore(ctx, id)
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Score not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("score_id", id).Msg("Failed to delete score")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to delete score")
		return
	}

	// A deleted round can pull earlier weeks back into a rolling window, so
	// deletion always recalculates.
	recalculate(r)
	apiutil.Message(w, http.StatusOK, "Score deleted successfully")
}

// recalculate regenerates all handicaps after a score mutation. Failures are
// logged but do not fail the request: the score write already committed, and
// the nightly job will converge the handicap table.
func recalculate(r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), recalcTimeout)
	defer cancel()

	if _, err := league.Recalculate(ctx, store, policies); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Handicap recalculation failed")
	}
}

func scoreFromRequest(req scoreRequest, id int64) models.Score {
	nine := req.Nine
	if nine == "" {
		nine = "front"
	}
	return models.Score{
		ID:           id,
		TeamID:       req.TeamID,
		CourseName:   req.CourseName,
		Week:         req.Week,
		Date:         req.Date,
		Nine:         nine,
		Player1Score: req.Player1Score,
		Player2Score: req.Player2Score,
		TeamTotal:    req.TeamTotal,
	}
}

func scoreIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.PathValue(scoreIDPath))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Invalid score id")
		return 0, false
	}
	return id, true
}

func decodeScoreRequest(w http.ResponseWriter, r *http.Request) (scoreRequest, bool) {
	var req scoreRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return scoreRequest{}, false
	}
	if req.TeamID <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Team id is required")
		return scoreRequest{}, false
	}
	if strings.TrimSpace(req.CourseName) == "" {
		apiutil.Error(w, http.StatusBadRequest, "Course name is required")
		return scoreRequest{}, false
	}
	if req.Week < 1 {
		apiutil.Error(w, http.StatusBadRequest, "Week must be at least 1")
		return scoreRequest{}, false
	}
	if req.TeamTotal <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Team total must be positive")
		return scoreRequest{}, false
	}
	if req.Player1Score != nil && req.Player2Score != nil &&
		*req.Player1Score+*req.Player2Score != req.TeamTotal {
		apiutil.Error(w, http.StatusBadRequest, "Player scores must sum to the team total")
		return scoreRequest{}, false
	}
	return req, true
}
