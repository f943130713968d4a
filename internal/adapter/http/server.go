package adapthttp

import (
	"net/http"

	"steptrack/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the optional SSO provider wiring. Enabled is false when
// no issuer was configured, in which case the SSO routes report not found.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	steps      *app.StepsService
	stats      *app.StatsService
	authSvc    *app.AuthService
	oidcConfig OIDCConfig
}

// New creates a Server wired to the given application services.
func New(steps *app.StepsService, stats *app.StatsService, authSvc *app.AuthService, oidcConfig OIDCConfig) *Server {
	return &Server{steps: steps, stats: stats, authSvc: authSvc, oidcConfig: oidcConfig}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("POST /auth/register", s.handleRegister)
	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("POST /auth/setup", s.handleSetup)
	api.HandleFunc("GET /auth/config", s.handleAuthConfig)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	api.Handle("POST /steps", s.requireUser(s.handleSubmitSteps))
	api.Handle("GET /me", s.requireUser(s.handleMe))

	api.Handle("GET /me/week", s.requireUser(s.handleCurrentWeek))
	api.Handle("GET /me/week/{num}", s.requireUser(s.handleWeekN))
	api.Handle("GET /me/month", s.requireUser(s.handleCurrentMonth))
	api.Handle("GET /me/month/{num}", s.requireUser(s.handleMonthN))
	api.Handle("GET /me/quarter", s.requireUser(s.handleCurrentQuarter))
	api.Handle("GET /me/quarter/{num}", s.requireUser(s.handleQuarterN))
	api.Handle("GET /me/year", s.requireUser(s.handleCurrentYear))
	api.Handle("GET /me/year/{num}", s.requireUser(s.handleYearN))

	api.Handle("GET /admin/users", s.requireAdmin(s.handleAdminUsers))
	api.Handle("GET /admin/stats", s.requireAdmin(s.handleAdminStats))
	api.Handle("GET /admin/users/{id}", s.requireAdmin(s.handleAdminUserDetail))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
