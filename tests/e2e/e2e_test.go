//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Health_Probes(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/live", "/ready", "/health"} {
		t.Run(path, func(t *testing.T) {
			resp := restRequest(t, ts, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

			body := decodeJSON[map[string]any](t, resp)
			assert.Equal(t, "ok", body["status"])
		})
	}
}

func TestE2E_Health_ReportsDatabase(t *testing.T) {
	ts := setupTestServer(t)

	resp := restRequest(t, ts, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "test-version", body["version"])

	components, ok := body["components"].(map[string]any)
	require.True(t, ok)
	db, ok := components["database"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", db["status"])
	ai, ok := components["ai"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "disabled", ai["status"])
}

func TestE2E_ProtectedRoute_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := restRequest(t, ts, http.MethodGet, "/api/footprints", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = restRequest(t, ts, http.MethodGet, "/api/footprints", "not-a-jwt", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
