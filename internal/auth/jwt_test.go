package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "carbontrack-test-secret-of-32-chars-min"

func newManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(testSecret, "carbontrack-test", ttl)
	require.NoError(t, err)
	return m
}

func TestNewJWTManager_ShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTManager("short", "carbontrack", time.Minute)
	require.Error(t, err)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, role := range []string{"user", "admin"} {
		t.Run(role, func(t *testing.T) {
			t.Parallel()

			m := newManager(t, 15*time.Minute)
			userID := uuid.New()

			token, err := m.GenerateAccessToken(userID, role)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			gotID, gotRole, err := m.ValidateAccessToken(token)
			require.NoError(t, err)
			assert.Equal(t, userID, gotID)
			assert.Equal(t, role, gotRole)
		})
	}
}

func TestJWTManager_ValidateAccessToken_Rejects(t *testing.T) {
	t.Parallel()

	m := newManager(t, 15*time.Minute)
	valid, err := m.GenerateAccessToken(uuid.New(), "user")
	require.NoError(t, err)

	expiredMgr := newManager(t, time.Minute)
	expiredMgr.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredMgr.GenerateAccessToken(uuid.New(), "user")
	require.NoError(t, err)

	otherSecret, err := NewJWTManager(strings.Repeat("x", MinSecretLength), "carbontrack-test", time.Minute)
	require.NoError(t, err)
	forged, err := otherSecret.GenerateAccessToken(uuid.New(), "admin")
	require.NoError(t, err)

	otherIssuer, err := NewJWTManager(testSecret, "someone-else", time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.GenerateAccessToken(uuid.New(), "user")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "carbontrack-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"expired", expired},
		{"wrong secret", forged},
		{"wrong issuer", wrongIssuer},
		{"alg none", none},
		{"tampered", valid[:len(valid)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, role, err := m.ValidateAccessToken(tt.token)
			require.Error(t, err)
			assert.Equal(t, uuid.Nil, id)
			assert.Empty(t, role)
		})
	}
}

func TestJWTManager_GenerateRefreshToken(t *testing.T) {
	t.Parallel()

	m := newManager(t, time.Minute)
	seen := make(map[string]struct{})
	for range 50 {
		raw, hash, err := m.GenerateRefreshToken()
		require.NoError(t, err)
		assert.Equal(t, HashToken(raw), hash)
		assert.Len(t, hash, 64)
		assert.NotContains(t, raw, "=")

		_, dup := seen[raw]
		require.False(t, dup, "refresh tokens must be unique")
		seen[raw] = struct{}{}
	}
}

func TestHashToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashToken("abc"))
}
