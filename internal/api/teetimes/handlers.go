// internal/api/teetimes/handlers.go
package teetimes

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
	queryTimeout     = 5 * time.Second
	teeTimeIDPathKey = "id"
	weekPathKey      = "week"
)

var store *appdb.Store

type teeTimeRequest struct {
	Week   int    `json:"week"`
	TeamID int64  `json:"teamId"`
	Day    string `json:"day"`
	Time   string `json:"time"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	store = database.Store
}

// GET /api/v1/teetimes
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	teeTimes, err := store.ListTeeTimes(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list tee times")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load tee times")
		return
	}
	writeTeeTimes(w, teeTimes)
}

// GET /api/v1/teetimes/week/{week}
func HandleListByWeek(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	raw := strings.TrimSpace(r.PathValue(weekPathKey))
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		apiutil.Error(w, http.StatusBadRequest, "Invalid week")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	teeTimes, err := store.ListTeeTimesByWeek(ctx, week)
	if err != nil {
		logger.Error().Err(err).Int("week", week).Msg("Failed to list tee times")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load tee times")
		return
	}
	writeTeeTimes(w, teeTimes)
}

// POST /api/v1/teetimes
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req teeTimeRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Week < 1 || req.TeamID <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Week and team id are required")
		return
	}
	if strings.TrimSpace(req.Day) == "" || strings.TrimSpace(req.Time) == "" {
		apiutil.Error(w, http.StatusBadRequest, "Day and time are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := store.CreateTeeTime(ctx, models.TeeTime{
		Week:   req.Week,
		TeamID: req.TeamID,
		Day:    req.Day,
		Time:   req.Time,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create tee time")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to create tee time")
		return
	}
	logger.Info().Int64("tee_time_id", id).Int("week", req.Week).Msg("Tee time booked")
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// DELETE /api/v1/teetimes/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	raw := strings.TrimSpace(r.PathValue(teeTimeIDPathKey))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Invalid tee time id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err = store.DeleteTeeTime(ctx, id)
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Tee time not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("tee_time_id", id).Msg("Failed to delete tee time")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to delete tee time")
		return
	}
	apiutil.Message(w, http.StatusOK, "Tee time deleted successfully")
}

func writeTeeTimes(w http.ResponseWriter, teeTimes []models.TeeTime) {
	if teeTimes == nil {
		teeTimes = []models.TeeTime{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, teeTimes)
}
