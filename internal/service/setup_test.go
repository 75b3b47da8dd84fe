package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/store/sqlite"
	"github.com/platefulapp/plateful-server/internal/validation"
)

const testTokenKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// setupServices builds the full service stack against a temporary SQLite
// database.
func setupServices(t *testing.T) (*Services, store.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(testTokenKey, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	return New(st, tokens, validation.New(), logger), st
}

// createTestUser registers a user directly in the store and returns it.
func createTestUser(t *testing.T, st store.Store, email string) *domain.User {
	t.Helper()

	now := time.Now()
	user := &domain.User{
		FirstName: "Test",
		LastName:  "Cook",
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func testIdentity(email string) auth.FederatedIdentity {
	return auth.FederatedIdentity{
		Provider:   "google",
		ExternalID: "sub-" + email,
		Email:      email,
		FirstName:  "Julia",
		LastName:   "Child",
	}
}
