// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tclausen/backnine/internal/api"
	"github.com/tclausen/backnine/internal/api/auth"
	"github.com/tclausen/backnine/internal/api/courses"
	"github.com/tclausen/backnine/internal/api/handicaps"
	"github.com/tclausen/backnine/internal/api/schedule"
	"github.com/tclausen/backnine/internal/api/scores"
	"github.com/tclausen/backnine/internal/api/standings"
	"github.com/tclausen/backnine/internal/api/teams"
	"github.com/tclausen/backnine/internal/api/teetimes"
	"github.com/tclausen/backnine/internal/config"
	"github.com/tclausen/backnine/internal/db"
	"github.com/tclausen/backnine/internal/ratelimit"
)

func newServer(cfg *config.Config, database *db.DB) *http.Server {
	router := http.NewServeMux()

	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithJSONAccept,
	)

	initHandlers(cfg, database)
	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func initHandlers(cfg *config.Config, database *db.DB) {
	policies := cfg.LeaguePolicies()

	auth.InitHandlers(cfg.Admin.PasswordHash, ratelimit.NewLimiter(nil))
	teams.InitHandlers(database)
	courses.InitHandlers(database)
	scores.InitHandlers(database, policies, cfg.League.MinTriggerWeek)
	handicaps.InitHandlers(database, policies)
	schedule.InitHandlers(database)
	teetimes.InitHandlers(database)
	standings.InitHandlers(database, cfg.RankingStrategy())
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Admin auth routes
	mux.HandleFunc("POST /api/v1/admin/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/admin/logout", auth.HandleLogout)

	// Team routes
	mux.HandleFunc("GET /api/v1/teams", teams.HandleList)
	mux.HandleFunc("GET /api/v1/teams/{id}", teams.HandleGet)
	mux.HandleFunc("POST /api/v1/teams", auth.RequireAdmin(teams.HandleCreate))
	mux.HandleFunc("PUT /api/v1/teams/{id}", auth.RequireAdmin(teams.HandleUpdate))
	mux.HandleFunc("DELETE /api/v1/teams/{id}", auth.RequireAdmin(teams.HandleDelete))

	// Course routes
	mux.HandleFunc("GET /api/v1/courses", courses.HandleList)
	mux.HandleFunc("POST /api/v1/courses", auth.RequireAdmin(courses.HandleCreate))
	mux.HandleFunc("PUT /api/v1/courses/{name}", auth.RequireAdmin(courses.HandleUpdate))

	// Score routes
	mux.HandleFunc("GET /api/v1/scores", scores.HandleList)
	mux.HandleFunc("POST /api/v1/scores", auth.RequireAdmin(scores.HandleCreate))
	mux.HandleFunc("PUT /api/v1/scores/{id}", auth.RequireAdmin(scores.HandleUpdate))
	mux.HandleFunc("DELETE /api/v1/scores/{id}", auth.RequireAdmin(scores.HandleDelete))

	// Handicap routes
	mux.HandleFunc("GET /api/v1/handicaps", handicaps.HandleList)
	mux.HandleFunc("POST /api/v1/handicaps", auth.RequireAdmin(handicaps.HandleUpsert))
	mux.HandleFunc("POST /api/v1/handicaps/recalculate", auth.RequireAdmin(handicaps.HandleRecalculate))

	// Schedule routes
	mux.HandleFunc("GET /api/v1/schedule", schedule.HandleList)
	mux.HandleFunc("PUT /api/v1/schedule/{week}", auth.RequireAdmin(schedule.HandleUpsert))

	// Tee time routes
	mux.HandleFunc("GET /api/v1/teetimes", teetimes.HandleList)
	mux.HandleFunc("GET /api/v1/teetimes/week/{week}", teetimes.HandleListByWeek)
	mux.HandleFunc("POST /api/v1/teetimes", teetimes.HandleCreate)
	mux.HandleFunc("DELETE /api/v1/teetimes/{id}", auth.RequireAdmin(teetimes.HandleDelete))

	// Standings
	mux.HandleFunc("GET /api/v1/standings", standings.HandleList)
}
