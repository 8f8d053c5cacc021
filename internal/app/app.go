package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	authmethodrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/authmethod"
	footprintrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/footprint"
	recommendationrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/recommendation"
	tokenrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider"
	"github.com/heartmarshall/carbontrack-backend/internal/auth"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	authsvc "github.com/heartmarshall/carbontrack-backend/internal/service/auth"
	coachsvc "github.com/heartmarshall/carbontrack-backend/internal/service/coach"
	footprintsvc "github.com/heartmarshall/carbontrack-backend/internal/service/footprint"
	recommendationsvc "github.com/heartmarshall/carbontrack-backend/internal/service/recommendation"
	usersvc "github.com/heartmarshall/carbontrack-backend/internal/service/user"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/rest"
)

// tokenCleanupInterval is how often expired refresh tokens are purged while
// the server runs.
const tokenCleanupInterval = time.Hour

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("ai_provider", cfg.AI.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	generator, closeGenerator, err := provider.New(ctx, cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("ai provider: %w", err)
	}
	defer func() {
		if err := closeGenerator(); err != nil {
			logger.Warn("close ai provider", slog.String("error", err.Error()))
		}
	}()

	jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("jwt manager: %w", err)
	}

	// Repositories
	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	authMethods := authmethodrepo.New(pool)
	footprints := footprintrepo.New(pool)
	recommendations := recommendationrepo.New(pool)

	// Services
	authService := authsvc.NewService(logger, users, tokens, authMethods, txm, jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, users)
	footprintService := footprintsvc.NewService(logger, footprints, users, txm)
	recommendationService := recommendationsvc.NewService(logger, recommendations, footprints, txm, generator,
		recommendationsvc.Config{
			HistoryLimit: cfg.Recommendations.HistoryLimit,
			MaxGenerated: cfg.Recommendations.MaxGenerated,
			Timeout:      cfg.AI.Timeout,
		})
	coachService := coachsvc.NewService(logger, footprints, users, generator, coachsvc.Config{
		MaxHistory:       cfg.Coach.MaxHistory,
		MaxMessageLength: cfg.Coach.MaxMessageLength,
		HistoryLimit:     cfg.Coach.RecentActivities,
		Timeout:          cfg.AI.Timeout,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Logger:          logger,
		Tokens:          authService,
		Health:          rest.NewHealthHandler(pool, Version, cfg.AI.Provider),
		Auth:            rest.NewAuthHandler(authService, logger),
		Profile:         rest.NewProfileHandler(userService, logger),
		Footprints:      rest.NewFootprintHandler(footprintService, logger),
		Recommendations: rest.NewRecommendationHandler(recommendationService, logger),
		Coach:           rest.NewCoachHandler(coachService, logger, cfg.CORS.AllowedOrigins, cfg.Coach.MaxHistory),
		Limiter:         limiter,
		RateLimit:       cfg.RateLimit,
		CORS:            cfg.CORS,
	})

	srv := newHTTPServer(cfg.Server, router, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runTokenCleanup(gctx, authService, tokenCleanupInterval, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}

type tokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// runTokenCleanup purges expired refresh tokens every interval until ctx is
// cancelled.
func runTokenCleanup(ctx context.Context, cleaner tokenCleaner, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := cleaner.CleanupExpiredTokens(ctx); err != nil {
				logger.Warn("refresh token cleanup failed", slog.String("error", err.Error()))
			}
		}
	}
}
