package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// authorFetchConcurrency bounds parallel author lookups when enriching
// recipe listings.
const authorFetchConcurrency = 8

// RecipeService orchestrates recipe operations with visibility and
// ownership enforcement.
type RecipeService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(st store.Store, logger *slog.Logger) *RecipeService {
	return &RecipeService{store: st, logger: logger}
}

// RecipeWithAuthor pairs a recipe with its author for listing responses.
// Author is nil when the account has since been deleted.
type RecipeWithAuthor struct {
	*domain.Recipe
	Author *domain.User `json:"author,omitempty"`
}

// CreateRecipeParams carries the fields of a new recipe.
type CreateRecipeParams struct {
	Title       string
	Description string
	ImageURL    string
	Visibility  domain.Visibility
}

// CreateRecipe creates a recipe authored by the principal.
func (s *RecipeService) CreateRecipe(ctx context.Context, principalID int64, params CreateRecipeParams) (*domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if params.Title == "" {
		return nil, errors.BadRequest("recipe title cannot be empty")
	}
	if params.Visibility == 0 {
		params.Visibility = domain.VisibilityPublic
	}
	if !params.Visibility.Valid() {
		return nil, errors.BadRequestf("invalid visibility %d", params.Visibility)
	}

	now := time.Now()
	recipe := &domain.Recipe{
		Title:         params.Title,
		Description:   params.Description,
		ImageURL:      params.ImageURL,
		AuthorID:      principalID,
		Visibility:    params.Visibility,
		UploadedAt:    now,
		LastUpdatedAt: now,
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe created",
		"recipe_id", recipe.ID,
		"author_id", principalID,
		"visibility", recipe.Visibility.String(),
	)

	return recipe, nil
}

// GetRecipe retrieves a recipe, enforcing its visibility against the
// principal. principalID is zero for anonymous callers.
func (s *RecipeService) GetRecipe(ctx context.Context, principalID, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.checkVisibility(principalID, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// checkVisibility decides whether the principal may see a recipe.
// Public recipes are open to everyone, community recipes to any signed-in
// user, private recipes to the author only.
func (s *RecipeService) checkVisibility(principalID int64, recipe *domain.Recipe) error {
	switch recipe.Visibility {
	case domain.VisibilityPublic:
		return nil
	case domain.VisibilityCommunity:
		if principalID == 0 {
			return errors.Forbidden("sign in to view this recipe")
		}
		return nil
	default:
		return domain.RequireOwner(principalID, recipe)
	}
}

// ListPublicRecipes returns public recipes with their authors attached,
// optionally narrowed by a title search term.
func (s *RecipeService) ListPublicRecipes(ctx context.Context, titleSearch string) ([]*RecipeWithAuthor, error) {
	recipes, err := s.store.FindRecipes(ctx, store.RecipeFilter{
		PublicOnly:  true,
		TitleSearch: titleSearch,
	})
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	return s.attachAuthors(ctx, recipes)
}

// ListMyRecipes returns every live recipe the principal has authored,
// regardless of visibility.
func (s *RecipeService) ListMyRecipes(ctx context.Context, principalID int64) ([]*domain.Recipe, error) {
	return s.store.FindRecipes(ctx, store.RecipeFilter{AuthorID: principalID})
}

// attachAuthors loads the author for each recipe concurrently. Recipes keep
// their listing order; a deleted author leaves Author nil rather than
// failing the whole listing.
func (s *RecipeService) attachAuthors(ctx context.Context, recipes []*domain.Recipe) ([]*RecipeWithAuthor, error) {
	result := make([]*RecipeWithAuthor, len(recipes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(authorFetchConcurrency)

	for i, recipe := range recipes {
		g.Go(func() error {
			author, err := s.store.GetUser(gctx, recipe.AuthorID)
			if err != nil && !errors.Is(err, errors.ErrNotFound) {
				return err
			}
			result[i] = &RecipeWithAuthor{Recipe: recipe, Author: author}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("attach authors: %w", err)
	}
	return result, nil
}

// UpdateRecipeParams is the allow-listed set of editable recipe fields.
// Nil means "leave unchanged".
type UpdateRecipeParams struct {
	Title       *string
	Description *string
	ImageURL    *string
	Visibility  *domain.Visibility
}

// UpdateRecipe applies a partial update to a recipe the principal authored.
func (s *RecipeService) UpdateRecipe(ctx context.Context, principalID, recipeID int64, params UpdateRecipeParams) (*domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, recipe); err != nil {
		return nil, err
	}

	var fields []store.Field
	if params.Title != nil {
		if *params.Title == "" {
			return nil, errors.BadRequest("recipe title cannot be empty")
		}
		fields = append(fields, store.Field{Name: "title", Value: *params.Title})
	}
	if params.Description != nil {
		fields = append(fields, store.Field{Name: "description", Value: *params.Description})
	}
	if params.ImageURL != nil {
		fields = append(fields, store.Field{Name: "image", Value: *params.ImageURL})
	}
	if params.Visibility != nil {
		if !params.Visibility.Valid() {
			return nil, errors.BadRequestf("invalid visibility %d", *params.Visibility)
		}
		fields = append(fields, store.Field{Name: "visibility", Value: *params.Visibility})
	}

	updated, err := s.store.UpdateRecipe(ctx, recipeID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe updated", "recipe_id", recipeID, "author_id", principalID)
	return updated, nil
}

// DeleteRecipe soft-deletes a recipe the principal authored. The store
// removes its shelf memberships in the same transaction.
func (s *RecipeService) DeleteRecipe(ctx context.Context, principalID, recipeID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(principalID, recipe); err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		return err
	}

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "author_id", principalID)
	return nil
}

// TagRecipe applies a tag to a recipe the principal authored.
func (s *RecipeService) TagRecipe(ctx context.Context, principalID, recipeID, tagID int64) (*domain.RecipeTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, recipe); err != nil {
		return nil, err
	}

	// Confirm the tag exists so the association can't dangle.
	if _, err := s.store.GetTag(ctx, tagID); err != nil {
		return nil, err
	}

	return s.store.AddRecipeTag(ctx, recipeID, tagID)
}

// UntagRecipe removes a tag from a recipe the principal authored. Removing
// a tag that is not applied is a no-op.
func (s *RecipeService) UntagRecipe(ctx context.Context, principalID, recipeID, tagID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(principalID, recipe); err != nil {
		return err
	}

	return s.store.RemoveRecipeTag(ctx, recipeID, tagID)
}

// ListRecipeTags returns the tags applied to a recipe the principal can see.
func (s *RecipeService) ListRecipeTags(ctx context.Context, principalID, recipeID int64) ([]*domain.Tag, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(principalID, recipe); err != nil {
		return nil, err
	}

	return s.store.ListTagsForRecipe(ctx, recipeID)
}
