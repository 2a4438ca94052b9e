// internal/api/courses/handlers.go
package courses

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tclausen/backnine/internal/api/apiutil"
	appdb "github.com/tclausen/backnine/internal/db"
	"github.com/tclausen/backnine/internal/models"
)

const (
	queryTimeout      = 5 * time.Second
	courseNamePathKey = "name"
)

var store *appdb.Store

type courseRequest struct {
	Name   string  `json:"name"`
	Par    int     `json:"par"`
	Slope  int     `json:"slope"`
	Rating float64 `json:"rating"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	store = database.Store
}

// GET /api/v1/courses
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	courses, err := store.ListCourses(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courses")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to load courses")
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, courses)
}

// POST /api/v1/courses
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	req, ok := decodeCourseRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.CreateCourse(ctx, models.Course(req))
	if err != nil {
		logger.Error().Err(err).Str("course", req.Name).Msg("Failed to create course")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to create course")
		return
	}
	logger.Info().Str("course", req.Name).Msg("Course created")
	apiutil.Message(w, http.StatusOK, "Course created successfully")
}

// PUT /api/v1/courses/{name}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	name := strings.TrimSpace(r.PathValue(courseNamePathKey))
	if name == "" {
		apiutil.Error(w, http.StatusBadRequest, "Course name is required")
		return
	}
	req, ok := decodeCourseRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	err := store.UpdateCourse(ctx, name, models.Course(req))
	if errors.Is(err, appdb.ErrNotFound) {
		apiutil.Error(w, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("course", name).Msg("Failed to update course")
		apiutil.Error(w, http.StatusInternalServerError, "Failed to update course")
		return
	}
	apiutil.Message(w, http.StatusOK, "Course updated successfully")
}

// decodeCourseRequest validates the reference data the handicap engine
// divides by: a non-positive slope would poison every later differential.
func decodeCourseRequest(w http.ResponseWriter, r *http.Request) (courseRequest, bool) {
	var req courseRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return courseRequest{}, false
	}
	if strings.TrimSpace(req.Name) == "" {
		apiutil.Error(w, http.StatusBadRequest, "Course name is required")
		return courseRequest{}, false
	}
	if req.Slope <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Course slope must be positive")
		return courseRequest{}, false
	}
	if req.Par <= 0 || req.Rating <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "Course par and rating must be positive")
		return courseRequest{}, false
	}
	return req, true
}
