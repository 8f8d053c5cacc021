//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	authmethodrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/authmethod"
	footprintrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/footprint"
	recommendationrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/recommendation"
	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider"
	authpkg "github.com/heartmarshall/carbontrack-backend/internal/auth"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	authsvc "github.com/heartmarshall/carbontrack-backend/internal/service/auth"
	coachsvc "github.com/heartmarshall/carbontrack-backend/internal/service/coach"
	footprintsvc "github.com/heartmarshall/carbontrack-backend/internal/service/footprint"
	recommendationsvc "github.com/heartmarshall/carbontrack-backend/internal/service/recommendation"
	usersvc "github.com/heartmarshall/carbontrack-backend/internal/service/user"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// Test server
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer wires the full HTTP stack against the shared test database.
// The text generator is disabled, so AI features take their fallback paths.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// Repositories.
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	authMethods := authmethodrepo.New(pool)
	footprints := footprintrepo.New(pool)
	recommendations := recommendationrepo.New(pool)

	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  720 * time.Hour,
		PasswordHashCost: 4,
	}
	jwtMgr, err := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)
	require.NoError(t, err)

	generator := provider.Disabled{}

	// Services.
	authService := authsvc.NewService(logger, users, tokens, authMethods, txm, jwtMgr, authCfg)
	userService := usersvc.NewService(logger, users)
	footprintService := footprintsvc.NewService(logger, footprints, users, txm)
	recommendationService := recommendationsvc.NewService(logger, recommendations, footprints, txm, generator,
		recommendationsvc.Config{HistoryLimit: 50, MaxGenerated: 3, Timeout: time.Second})
	coachService := coachsvc.NewService(logger, footprints, users, generator,
		coachsvc.Config{MaxHistory: 20, MaxMessageLength: 2000, HistoryLimit: 10, Timeout: time.Second})

	router := rest.NewRouter(rest.RouterDeps{
		Logger:          logger,
		Tokens:          authService,
		Health:          rest.NewHealthHandler(pool, "test-version", config.AIProviderNone),
		Auth:            rest.NewAuthHandler(authService, logger),
		Profile:         rest.NewProfileHandler(userService, logger),
		Footprints:      rest.NewFootprintHandler(footprintService, logger),
		Recommendations: rest.NewRecommendationHandler(recommendationService, logger),
		Coach:           rest.NewCoachHandler(coachService, logger, "*", 20),
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// restRequest sends body as JSON (when non-nil) with an optional bearer token.
func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeJSON decodes the response body into T and closes it.
func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

// registerUser creates a fresh account through the API and returns its tokens.
func registerUser(t *testing.T, ts *testServer) session {
	t.Helper()

	suffix := uuid.NewString()[:8]
	resp := restRequest(t, ts, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    fmt.Sprintf("e2e-%s@example.com", suffix),
		"username": "e2e_" + suffix,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeJSON[map[string]any](t, resp)
	user := body["user"].(map[string]any)

	return session{
		AccessToken:  body["accessToken"].(string),
		RefreshToken: body["refreshToken"].(string),
		UserID:       user["id"].(string),
	}
}
