// internal/api/auth/handlers.go
package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tclausen/backnine/internal/api/apiutil"
	"github.com/tclausen/backnine/internal/ratelimit"
)

var (
	sessions     *Sessions
	limiter      *ratelimit.Limiter
	passwordHash string
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// InitHandlers must be called during server startup before handling
// requests. hash is the bcrypt hash of the shared admin password.
func InitHandlers(hash string, l *ratelimit.Limiter) {
	sessions = NewSessions()
	limiter = l
	passwordHash = hash
}

// POST /api/v1/admin/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if passwordHash == "" {
		logger.Error().Msg("Admin login attempted without ADMIN_PASSWORD_HASH configured")
		apiutil.Error(w, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	}

	ip := ratelimit.ClientIP(r)
	if !limiter.Allow(ip) {
		logger.Warn().Str("ip", ip).Msg("Login rate limited")
		apiutil.Error(w, http.StatusTooManyRequests, "Too many attempts, try again later")
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !VerifyPassword(passwordHash, req.Password) {
		limiter.RecordFailure(ip)
		logger.Warn().Str("ip", ip).Msg("Failed admin login")
		apiutil.Error(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	limiter.RecordSuccess(ip)
	token := sessions.Issue()
	logger.Info().Str("ip", ip).Msg("Admin logged in")
	_ = apiutil.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

// POST /api/v1/admin/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	sessions.Revoke(tokenFromRequest(r))
	apiutil.Message(w, http.StatusOK, "Logged out")
}

// RequireAdmin guards mutating endpoints with the shared-secret session.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil || !sessions.Valid(tokenFromRequest(r)) {
			log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("Rejected unauthenticated admin request")
			apiutil.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return r.Header.Get("X-Admin-Token")
}
