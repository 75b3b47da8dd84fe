package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

func TestCreateAndGetRecipe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := insertTestUser(t, s, "chef@example.com")

	r := makeTestRecipe(author, "Coq au Vin")
	r.ImageURL = "https://example.com/coq.jpg"
	if err := s.CreateRecipe(ctx, r); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if r.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	got, err := s.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Title != "Coq au Vin" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.AuthorID != author {
		t.Errorf("AuthorID: got %d, want %d", got.AuthorID, author)
	}
	if got.Visibility != domain.VisibilityPublic {
		t.Errorf("Visibility: got %v", got.Visibility)
	}
	if got.UploadedAt.Unix() != r.UploadedAt.Unix() {
		t.Errorf("UploadedAt: got %v, want %v", got.UploadedAt, r.UploadedAt)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRecipe(context.Background(), 404)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindRecipes_OrderAndFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := insertTestUser(t, s, "alice@example.com")
	bob := insertTestUser(t, s, "bob@example.com")

	base := time.Now().Add(-time.Hour)
	mk := func(author int64, title string, vis domain.Visibility, offset time.Duration) int64 {
		r := makeTestRecipe(author, title)
		r.Visibility = vis
		r.LastUpdatedAt = base.Add(offset)
		if err := s.CreateRecipe(ctx, r); err != nil {
			t.Fatalf("CreateRecipe(%s): %v", title, err)
		}
		return r.ID
	}

	oldest := mk(alice, "Ratatouille", domain.VisibilityPublic, 0)
	private := mk(alice, "Secret Sauce", domain.VisibilityPrivate, time.Minute)
	newest := mk(bob, "Tarte Tatin", domain.VisibilityPublic, 2*time.Minute)

	// No filter: every live recipe, most recently updated first.
	all, err := s.FindRecipes(ctx, store.RecipeFilter{})
	if err != nil {
		t.Fatalf("FindRecipes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(all))
	}
	if all[0].ID != newest || all[2].ID != oldest {
		t.Errorf("wrong order: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}

	// PublicOnly hides the private recipe.
	public, err := s.FindRecipes(ctx, store.RecipeFilter{PublicOnly: true})
	if err != nil {
		t.Fatalf("FindRecipes public: %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("expected 2 public recipes, got %d", len(public))
	}
	for _, r := range public {
		if r.ID == private {
			t.Error("private recipe in public listing")
		}
	}

	// Author filter.
	byAlice, err := s.FindRecipes(ctx, store.RecipeFilter{AuthorID: alice})
	if err != nil {
		t.Fatalf("FindRecipes by author: %v", err)
	}
	if len(byAlice) != 2 {
		t.Fatalf("expected 2 recipes by alice, got %d", len(byAlice))
	}

	// Title substring search.
	tarts, err := s.FindRecipes(ctx, store.RecipeFilter{TitleSearch: "tarte"})
	if err != nil {
		t.Fatalf("FindRecipes search: %v", err)
	}
	if len(tarts) != 1 || tarts[0].ID != newest {
		t.Errorf("search results: %v", tarts)
	}
}

func TestUpdateRecipe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := insertTestUser(t, s, "chef@example.com")
	id := insertTestRecipe(t, s, author, "Original")

	before, err := s.GetRecipe(ctx, id)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}

	got, err := s.UpdateRecipe(ctx, id, []store.Field{
		{Name: "title", Value: "Revised"},
		{Name: "visibility", Value: domain.VisibilityPrivate},
	})
	if err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}
	if got.Title != "Revised" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.Visibility != domain.VisibilityPrivate {
		t.Errorf("Visibility: got %v", got.Visibility)
	}
	if !got.LastUpdatedAt.After(before.LastUpdatedAt) {
		t.Error("LastUpdatedAt did not advance")
	}
}

func TestUpdateRecipe_UnknownField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := insertTestUser(t, s, "chef@example.com")
	id := insertTestRecipe(t, s, author, "Strict")

	_, err := s.UpdateRecipe(ctx, id, []store.Field{{Name: "authorId", Value: 99}})
	if !errors.Is(err, errors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestDeleteRecipe_CascadesShelfMemberships(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := insertTestUser(t, s, "chef@example.com")
	recipe := insertTestRecipe(t, s, author, "Doomed")
	shelf := insertTestShelf(t, s, author, "Favorites")

	if _, err := s.AddRecipeToShelf(ctx, shelf, recipe); err != nil {
		t.Fatalf("AddRecipeToShelf: %v", err)
	}

	if err := s.DeleteRecipe(ctx, recipe); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	// The recipe is gone.
	if _, err := s.GetRecipe(ctx, recipe); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	// So is its shelf membership.
	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM shelf_recipes WHERE recipe_id = ?`, recipe).Scan(&count); err != nil {
		t.Fatalf("count memberships: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 memberships, got %d", count)
	}

	// Deleting again is not found.
	if err := s.DeleteRecipe(ctx, recipe); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestRecipeTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := insertTestUser(t, s, "chef@example.com")
	recipe := insertTestRecipe(t, s, author, "Tagged")

	spicy, err := s.CreateTag(ctx, "spicy")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	quick, err := s.CreateTag(ctx, "quick")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if _, err := s.AddRecipeTag(ctx, recipe, spicy.ID); err != nil {
		t.Fatalf("AddRecipeTag: %v", err)
	}
	// Duplicate tagging is tolerated.
	if _, err := s.AddRecipeTag(ctx, recipe, spicy.ID); err != nil {
		t.Fatalf("AddRecipeTag duplicate: %v", err)
	}
	if _, err := s.AddRecipeTag(ctx, recipe, quick.ID); err != nil {
		t.Fatalf("AddRecipeTag: %v", err)
	}

	// Listing is distinct despite the duplicate row.
	tags, err := s.ListTagsForRecipe(ctx, recipe)
	if err != nil {
		t.Fatalf("ListTagsForRecipe: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}

	// Removal clears every matching row and is idempotent.
	if err := s.RemoveRecipeTag(ctx, recipe, spicy.ID); err != nil {
		t.Fatalf("RemoveRecipeTag: %v", err)
	}
	if err := s.RemoveRecipeTag(ctx, recipe, spicy.ID); err != nil {
		t.Fatalf("RemoveRecipeTag repeat: %v", err)
	}

	tags, err = s.ListTagsForRecipe(ctx, recipe)
	if err != nil {
		t.Fatalf("ListTagsForRecipe: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != quick.ID {
		t.Errorf("tags after removal: %v", tags)
	}
}
