package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

func makeTestCommunity(adminID int64, name string) *domain.Community {
	now := time.Now()
	return &domain.Community{
		Name:          name,
		Description:   "a cooking community",
		AdminID:       adminID,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}

func TestCreateAndGetCommunity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := insertTestUser(t, s, "admin@example.com")

	c := makeTestCommunity(admin, "Sourdough Society")
	if err := s.CreateCommunity(ctx, c); err != nil {
		t.Fatalf("CreateCommunity: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	got, err := s.GetCommunity(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCommunity: %v", err)
	}
	if got.Name != "Sourdough Society" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.AdminID != admin {
		t.Errorf("AdminID: got %d, want %d", got.AdminID, admin)
	}
}

func TestCreateCommunity_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := insertTestUser(t, s, "admin@example.com")

	if err := s.CreateCommunity(ctx, makeTestCommunity(admin, "Pasta People")); err != nil {
		t.Fatalf("CreateCommunity: %v", err)
	}

	err := s.CreateCommunity(ctx, makeTestCommunity(admin, "Pasta People"))
	if !errors.Is(err, errors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateCommunity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := insertTestUser(t, s, "admin@example.com")
	c := makeTestCommunity(admin, "Original Name")
	if err := s.CreateCommunity(ctx, c); err != nil {
		t.Fatalf("CreateCommunity: %v", err)
	}

	got, err := s.UpdateCommunity(ctx, c.ID, []store.Field{
		{Name: "name", Value: "New Name"},
		{Name: "description", Value: "updated"},
	})
	if err != nil {
		t.Fatalf("UpdateCommunity: %v", err)
	}
	if got.Name != "New Name" || got.Description != "updated" {
		t.Errorf("community: %+v", got)
	}
	if !got.LastUpdatedAt.After(c.LastUpdatedAt) {
		t.Error("LastUpdatedAt did not advance")
	}

	// Admin reassignment is not an updatable field.
	_, err = s.UpdateCommunity(ctx, c.ID, []store.Field{{Name: "adminId", Value: 2}})
	if !errors.Is(err, errors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestListCommunitiesByAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := insertTestUser(t, s, "alice@example.com")
	bob := insertTestUser(t, s, "bob@example.com")

	for _, name := range []string{"One", "Two"} {
		if err := s.CreateCommunity(ctx, makeTestCommunity(alice, name)); err != nil {
			t.Fatalf("CreateCommunity(%s): %v", name, err)
		}
	}
	if err := s.CreateCommunity(ctx, makeTestCommunity(bob, "Three")); err != nil {
		t.Fatalf("CreateCommunity: %v", err)
	}

	got, err := s.ListCommunitiesByAdmin(ctx, alice)
	if err != nil {
		t.Fatalf("ListCommunitiesByAdmin: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 communities, got %d", len(got))
	}

	all, err := s.ListCommunities(ctx)
	if err != nil {
		t.Fatalf("ListCommunities: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 communities, got %d", len(all))
	}
}

func TestDeleteCommunity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := insertTestUser(t, s, "admin@example.com")
	c := makeTestCommunity(admin, "Short Lived")
	if err := s.CreateCommunity(ctx, c); err != nil {
		t.Fatalf("CreateCommunity: %v", err)
	}

	if err := s.DeleteCommunity(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCommunity: %v", err)
	}
	if _, err := s.GetCommunity(ctx, c.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := s.DeleteCommunity(ctx, c.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}
