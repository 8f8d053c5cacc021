package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, string, error)
	calls             []string
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	m.calls = append(m.calls, token)
	return m.ValidateTokenFunc(ctx, token)
}

func validatorFor(userID uuid.UUID, role string) *tokenValidatorMock {
	return &tokenValidatorMock{
		ValidateTokenFunc: func(_ context.Context, token string) (uuid.UUID, string, error) {
			if token == "good" {
				return userID, role, nil
			}
			return uuid.Nil, "", errors.New("unauthorized")
		},
	}
}

type captured struct {
	called bool
	userID uuid.UUID
	hasID  bool
}

func captureHandler(c *captured) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.userID, c.hasID = ctxutil.UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidBearer(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	v := validatorFor(userID, "admin")
	var c captured

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()
	Auth(v)(captureHandler(&c)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, c.called)
	assert.True(t, c.hasID)
	assert.Equal(t, userID, c.userID)
}

func TestAuth_AnonymousPassesThrough(t *testing.T) {
	t.Parallel()

	v := validatorFor(uuid.New(), "user")
	var c captured

	rec := httptest.NewRecorder()
	Auth(v)(captureHandler(&c)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, c.called)
	assert.False(t, c.hasID)
	assert.Empty(t, v.calls)
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	v := validatorFor(uuid.New(), "user")
	var c captured

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	Auth(v)(captureHandler(&c)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, rec.Body.String())
	assert.False(t, c.called)
}

func TestAuth_NonBearerSchemeIgnored(t *testing.T) {
	t.Parallel()

	v := validatorFor(uuid.New(), "user")
	var c captured

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	Auth(v)(captureHandler(&c)).ServeHTTP(rec, req)

	assert.True(t, c.called)
	assert.False(t, c.hasID)
	assert.Empty(t, v.calls)
}

func TestAuth_QueryTokenOnlyForWebSocket(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("upgrade", func(t *testing.T) {
		t.Parallel()

		v := validatorFor(userID, "user")
		var c captured
		req := httptest.NewRequest(http.MethodGet, "/api/coach/ws?access_token=good", nil)
		req.Header.Set("Upgrade", "websocket")
		Auth(v)(captureHandler(&c)).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, userID, c.userID)
	})

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()

		v := validatorFor(userID, "user")
		var c captured
		req := httptest.NewRequest(http.MethodGet, "/api/me?access_token=good", nil)
		Auth(v)(captureHandler(&c)).ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, c.hasID)
		assert.Empty(t, v.calls)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	var c captured
	h := RequireAuth(captureHandler(&c))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, c.called)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, c.called)
}
