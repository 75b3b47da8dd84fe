package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeTestUser builds a user with sensible defaults. Email must be unique
// per test store.
func makeTestUser(email string) *domain.User {
	now := time.Now()
	return &domain.User{
		FirstName: "Julia",
		LastName:  "Child",
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// insertTestUser creates a user and returns its assigned ID.
func insertTestUser(t *testing.T, s *Store, email string) int64 {
	t.Helper()
	u := makeTestUser(email)
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u.ID
}

// makeTestRecipe builds a public recipe owned by authorID.
func makeTestRecipe(authorID int64, title string) *domain.Recipe {
	now := time.Now()
	return &domain.Recipe{
		Title:         title,
		Description:   "a test recipe",
		AuthorID:      authorID,
		Visibility:    domain.VisibilityPublic,
		UploadedAt:    now,
		LastUpdatedAt: now,
	}
}

// insertTestRecipe creates a recipe and returns its assigned ID.
func insertTestRecipe(t *testing.T, s *Store, authorID int64, title string) int64 {
	t.Helper()
	r := makeTestRecipe(authorID, title)
	if err := s.CreateRecipe(context.Background(), r); err != nil {
		t.Fatalf("CreateRecipe(%s): %v", title, err)
	}
	return r.ID
}

// makeTestShelf builds a shelf owned by userID.
func makeTestShelf(userID int64, label string) *domain.Shelf {
	now := time.Now()
	return &domain.Shelf{UserID: userID, Label: label, CreatedAt: now, UpdatedAt: now}
}

// insertTestShelf creates a shelf and returns its assigned ID.
func insertTestShelf(t *testing.T, s *Store, userID int64, label string) int64 {
	t.Helper()
	sh := makeTestShelf(userID, label)
	if err := s.CreateShelf(context.Background(), sh); err != nil {
		t.Fatalf("CreateShelf(%s): %v", label, err)
	}
	return sh.ID
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"users", "profiles", "recipes", "shelves", "shelf_recipes",
		"tags", "recipe_tags", "communities", "sessions",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	defer s2.Close()
}
