package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/config"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/middleware"
)

// Rate limit scopes.
const (
	limitScopeAuth = "auth"
	limitScopeAI   = "ai"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// RouterDeps wires handlers and cross-cutting middleware into a router.
type RouterDeps struct {
	Logger          *slog.Logger
	Tokens          tokenValidator
	Health          *HealthHandler
	Auth            *AuthHandler
	Profile         *ProfileHandler
	Footprints      *FootprintHandler
	Recommendations *RecommendationHandler
	Coach           *CoachHandler

	// Limiter may be nil, which disables rate limiting.
	Limiter   *middleware.RateLimiter
	RateLimit config.RateLimitConfig
	CORS      config.CORSConfig
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth
	authLimit := d.limit(limitScopeAuth, d.RateLimit.AuthPerMinute)
	aiLimit := d.limit(limitScopeAI, d.RateLimit.AIPerMinute)

	protected := func(h http.HandlerFunc) http.Handler { return authed(h) }
	protectedAI := func(h http.HandlerFunc) http.Handler { return authed(aiLimit(h)) }

	// Health
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	// Auth
	mux.Handle("POST /auth/register", authLimit(http.HandlerFunc(d.Auth.Register)))
	mux.Handle("POST /auth/login", authLimit(http.HandlerFunc(d.Auth.Login)))
	mux.Handle("POST /auth/refresh", authLimit(http.HandlerFunc(d.Auth.Refresh)))
	mux.Handle("POST /auth/logout", protected(d.Auth.Logout))

	// Profile
	mux.Handle("GET /api/me", protected(d.Profile.Get))
	mux.Handle("PATCH /api/me", protected(d.Profile.Update))

	// Footprints
	mux.Handle("GET /api/footprints", protected(d.Footprints.List))
	mux.Handle("POST /api/footprints", protected(d.Footprints.Create))
	mux.Handle("GET /api/footprints/summary", protected(d.Footprints.Summary))
	mux.Handle("GET /api/footprints/insights", protected(d.Footprints.Insights))
	mux.Handle("POST /api/footprints/estimate", protected(d.Footprints.Estimate))
	mux.Handle("GET /api/footprints/{id}", protected(d.Footprints.Get))
	mux.Handle("PUT /api/footprints/{id}", protected(d.Footprints.Update))
	mux.Handle("DELETE /api/footprints/{id}", protected(d.Footprints.Delete))
	mux.Handle("GET /api/factors", protected(Factors))

	// Recommendations
	mux.Handle("GET /api/recommendations", protected(d.Recommendations.List))
	mux.Handle("POST /api/recommendations", protected(d.Recommendations.Create))
	mux.Handle("POST /api/recommendations/generate", protectedAI(d.Recommendations.Generate))
	mux.Handle("PUT /api/recommendations/{id}", protected(d.Recommendations.Update))
	mux.Handle("DELETE /api/recommendations/{id}", protected(d.Recommendations.Delete))

	// Coach
	mux.Handle("POST /api/coach/chat", protectedAI(d.Coach.Chat))
	mux.Handle("GET /api/coach/suggestion", protectedAI(d.Coach.Suggestion))
	mux.Handle("GET /api/coach/ws", protectedAI(d.Coach.ChatWS))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
		middleware.Auth(d.Tokens),
	)(mux)
}

func (d RouterDeps) limit(scope string, perMinute int) middleware.Middleware {
	if d.Limiter == nil || !d.RateLimit.Enabled || perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return d.Limiter.Limit(scope, perMinute)
}
