// internal/api/schedule/handlers.go
package schedule

import (
	"context"
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
	queryTimeout = 5 * time.Second
	weekPathKey  = "week"
)

var store *appdb.Store

type scheduleRequest struct {
	Date       string `json:"date"`
	CourseName string `json:"courseName"`
	Nine       string `json:"nine"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	store = database.Store
}

// GET /api/v1/schedule
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	weeks, err := store.ListSchedule(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list schedule")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	if weeks == nil {
		weeks = []models.ScheduleWeek{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, weeks)
}

// PUT /api/v1/schedule/{week}
func HandleUpsert(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	raw := strings.TrimSpace(r.PathValue(weekPathKey))
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		apiutil.Error(w, http.StatusBadRequest, "Invalid week")
		return
	}

	var req scheduleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.CourseName) == "" || strings.TrimSpace(req.Date) == "" {
		apiutil.Error(w, http.StatusBadRequest, "Date and course name are required")
		return
	}
	nine := req.Nine
	if nine == "" {
		nine = "front"
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err = store.UpsertScheduleWeek(ctx, models.ScheduleWeek{
		Week:       week,
		Date:       req.Date,
		CourseName: req.CourseName,
		Nine:       nine,
	})
	if err != nil {
		logger.Error().Err(err).Int("week", week).Msg("Failed to save schedule week")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to save schedule")
		return
	}
	apiutil.Message(w, http.StatusOK, "Schedule updated successfully")
}
