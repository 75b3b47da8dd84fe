package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// ShelfService orchestrates shelf operations with ownership enforcement.
type ShelfService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShelfService creates a new shelf service.
func NewShelfService(st store.Store, logger *slog.Logger) *ShelfService {
	return &ShelfService{store: st, logger: logger}
}

// CreateShelf creates a shelf for the principal. Labels are unique among
// the user's live shelves.
func (s *ShelfService) CreateShelf(ctx context.Context, principalID int64, label string) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if label == "" {
		return nil, errors.BadRequest("shelf label cannot be empty")
	}

	now := time.Now()
	shelf := &domain.Shelf{
		UserID:    principalID,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateShelf(ctx, shelf); err != nil {
		return nil, err
	}

	s.logger.Info("shelf created",
		"shelf_id", shelf.ID,
		"user_id", principalID,
		"label", label,
	)

	return shelf, nil
}

// GetShelf retrieves a shelf the principal owns.
func (s *ShelfService) GetShelf(ctx context.Context, principalID, shelfID int64) (*domain.Shelf, error) {
	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// ListMyShelves returns the principal's live shelves.
func (s *ShelfService) ListMyShelves(ctx context.Context, principalID int64) ([]*domain.Shelf, error) {
	return s.store.ListShelvesByUser(ctx, principalID)
}

// RenameShelf changes a shelf's label.
func (s *ShelfService) RenameShelf(ctx context.Context, principalID, shelfID int64, label string) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if label == "" {
		return nil, errors.BadRequest("shelf label cannot be empty")
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, shelf); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateShelf(ctx, shelfID, []store.Field{
		{Name: "label", Value: label},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shelf renamed",
		"shelf_id", shelfID,
		"user_id", principalID,
		"label", label,
	)
	return updated, nil
}

// DeleteShelf soft-deletes a shelf the principal owns, freeing its label.
func (s *ShelfService) DeleteShelf(ctx context.Context, principalID, shelfID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(principalID, shelf); err != nil {
		return err
	}

	if err := s.store.SoftDeleteShelf(ctx, shelfID); err != nil {
		return err
	}

	s.logger.Info("shelf deleted", "shelf_id", shelfID, "user_id", principalID)
	return nil
}

// AddRecipe places a live recipe on a shelf the principal owns. A recipe
// already on the shelf is a conflict.
func (s *ShelfService) AddRecipe(ctx context.Context, principalID, shelfID, recipeID int64) (*domain.ShelfRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, shelf); err != nil {
		return nil, err
	}

	// A deleted or unknown recipe cannot be shelved.
	if _, err := s.store.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	sr, err := s.store.AddRecipeToShelf(ctx, shelfID, recipeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe shelved",
		"shelf_id", shelfID,
		"recipe_id", recipeID,
		"user_id", principalID,
	)
	return sr, nil
}

// RemoveRecipe takes a recipe off a shelf the principal owns, returning the
// removed membership row.
func (s *ShelfService) RemoveRecipe(ctx context.Context, principalID, shelfID, recipeID int64) (*domain.ShelfRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, shelf); err != nil {
		return nil, err
	}

	sr, err := s.store.RemoveRecipeFromShelf(ctx, shelfID, recipeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe unshelved",
		"shelf_id", shelfID,
		"recipe_id", recipeID,
		"user_id", principalID,
	)
	return sr, nil
}

// ListRecipes returns the live recipes on a shelf the principal owns.
func (s *ShelfService) ListRecipes(ctx context.Context, principalID, shelfID int64) ([]*domain.Recipe, error) {
	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, shelf); err != nil {
		return nil, err
	}

	recipes, err := s.store.ListRecipesForShelf(ctx, shelfID)
	if err != nil {
		return nil, fmt.Errorf("list shelf recipes: %w", err)
	}
	return recipes, nil
}
