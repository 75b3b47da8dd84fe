package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store/sqlite"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// testKeyHex is a fixed symmetric key so tokens are reproducible in tests.
const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer builds a server over a fresh on-disk store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	services := service.New(st, tokens, validation.New(), logger)

	s := NewServer(st, services, logger, Options{
		Name: "Plateful API Test",
		// Generous limits so tests never trip the auth throttle.
		AuthRateRPS:   100,
		AuthRateBurst: 100,
	})
	t.Cleanup(s.Close)

	return &testServer{Server: s, api: humatest.Wrap(t, s.api)}
}

// signIn registers or signs in a user via the API and returns the auth payload.
func (ts *testServer) signIn(t *testing.T, email string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/signin", map[string]any{
		"provider":    "google",
		"external_id": "ext-" + email,
		"email":       email,
		"first_name":  "Test",
		"last_name":   "User",
	})
	require.Equal(t, http.StatusOK, resp.Code, "sign-in failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
}
