package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn_CreatesAccount(t *testing.T) {
	ts := setupTestServer(t)

	body := ts.signIn(t, "new@example.com")
	assert.NotZero(t, body.User.ID)
	assert.Equal(t, "new@example.com", body.User.Email)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.NotEmpty(t, body.AccessToken)
	assert.NotEmpty(t, body.RefreshToken)

	// A second sign-in with the same identity lands on the same account.
	again := ts.signIn(t, "new@example.com")
	assert.Equal(t, body.User.ID, again.User.ID)
}

func TestSignIn_MissingExternalID(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/signin", map[string]any{
		"provider": "google",
		"email":    "incomplete@example.com",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := setupTestServer(t)

	first := ts.signIn(t, "rotate@example.com")

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": first.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var next AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &next))
	assert.Equal(t, first.User.ID, next.User.ID)
	assert.NotEqual(t, first.RefreshToken, next.RefreshToken)

	// The old refresh token was consumed by rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": first.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	ts := setupTestServer(t)

	body := ts.signIn(t, "logout@example.com")

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": body.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": body.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Logging out twice is fine.
	resp = ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": body.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/users/me", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	body := ts.signIn(t, "me@example.com")
	resp = ts.api.Get("/api/v1/users/me", bearer(body.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var me UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &me))
	assert.Equal(t, body.User.ID, me.ID)
}
