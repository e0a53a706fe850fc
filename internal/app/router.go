package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/langassist/internal/auth"
	"github.com/heartmarshall/langassist/internal/config"
	"github.com/heartmarshall/langassist/internal/service/view"
	"github.com/heartmarshall/langassist/internal/transport/middleware"
	"github.com/heartmarshall/langassist/internal/transport/rest"
	"github.com/heartmarshall/langassist/internal/transport/ws"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *view.Manager
	tokens   *auth.SessionManager
	limiter  *middleware.RateLimiter
	checks   map[string]rest.Checker
}

// newRouter mounts every endpoint behind the global middleware chain.
// View endpoints require a session token; submits and session creation
// are rate limited.
func newRouter(d routerDeps) http.Handler {
	health := rest.NewHealthHandler(BuildVersion(), d.checks)
	sessionHandler := rest.NewSessionHandler(d.tokens, d.sessions, d.logger)
	viewHandler := rest.NewViewHandler(d.sessions, d.cfg.Server.MaxBodyBytes, d.logger)
	wsHandler := ws.NewHandler(d.sessions, middleware.OriginChecker(d.cfg.CORS), d.logger)

	limit := d.limiter.Limit(d.cfg.RateLimit.RequestsPerMinute)
	authed := middleware.Auth(d.tokens)
	authedLimited := middleware.Chain(authed, limit)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle("POST /api/sessions", limit(http.HandlerFunc(sessionHandler.Create)))

	mux.Handle("GET /api/views", authed(http.HandlerFunc(viewHandler.List)))
	mux.Handle("GET /api/views/{view}", authed(http.HandlerFunc(viewHandler.Get)))
	mux.Handle("POST /api/views/{view}/submit", authedLimited(http.HandlerFunc(viewHandler.Submit)))
	mux.Handle("POST /api/views/{view}/reset", authed(http.HandlerFunc(viewHandler.Reset)))
	mux.Handle("GET /api/views/word-meaning/audio/{voice}", authed(http.HandlerFunc(viewHandler.Audio)))

	mux.Handle("GET /ws/views", authed(wsHandler))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(d.logger),
		middleware.Recovery(d.logger),
		middleware.CORS(d.cfg.CORS),
	)(mux)
}
