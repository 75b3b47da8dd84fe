package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
)

func makeTestSession(id string, userID int64, hash string, ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: hash,
		ExpiresAt:        now.Add(ttl),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := insertTestUser(t, s, "session@example.com")

	sess := makeTestSession("sess-1", user, "hash-abc", time.Hour)
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByTokenHash(ctx, "hash-abc")
	if err != nil {
		t.Fatalf("GetSessionByTokenHash: %v", err)
	}
	if got.ID != "sess-1" || got.UserID != user {
		t.Errorf("session: %+v", got)
	}
	if got.ExpiresAt.Unix() != sess.ExpiresAt.Unix() {
		t.Errorf("ExpiresAt: got %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}

	_, err = s.GetSessionByTokenHash(ctx, "unknown")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteSession_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := insertTestUser(t, s, "session@example.com")
	sess := makeTestSession("sess-del", user, "hash-del", time.Hour)
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteSession(ctx, "sess-del"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	// Logout of a session that is already gone stays quiet.
	if err := s.DeleteSession(ctx, "sess-del"); err != nil {
		t.Fatalf("DeleteSession repeat: %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := insertTestUser(t, s, "session@example.com")

	if err := s.CreateSession(ctx, makeTestSession("live", user, "hash-live", time.Hour)); err != nil {
		t.Fatalf("CreateSession live: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("stale", user, "hash-stale", -time.Hour)); err != nil {
		t.Fatalf("CreateSession stale: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged session, got %d", n)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-live"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-stale"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("stale session should be purged, got %v", err)
	}
}
