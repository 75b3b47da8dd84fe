// Package store defines the persistence contract for the Plateful server.
//
// The interface is implemented by the sqlite subpackage. All methods return
// typed errors from internal/errors: NotFound for missing or soft-deleted
// records, Conflict for uniqueness violations. Nothing is retried or
// swallowed; a failed write surfaces immediately.
package store

import (
	"context"

	"github.com/platefulapp/plateful-server/internal/domain"
)

// RecipeFilter narrows FindRecipes results. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    int64             // recipes authored by this user
	PublicOnly  bool              // restrict to Visibility == Public; wins over Visibility
	Visibility  domain.Visibility // restrict to a specific visibility level
	TitleSearch string            // case-insensitive substring match on title
}

// Store is the persistence boundary consumed by the service layer.
type Store interface {
	// Users. Soft delete; reads exclude deleted rows.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id int64, fields []Field) (*domain.User, error)
	SoftDeleteUser(ctx context.Context, id int64) error

	// Profiles. At most one per user; hard delete.
	CreateProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	GetProfileByUser(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateProfileBio(ctx context.Context, userID int64, bio string) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, userID int64) error

	// Recipes. Soft delete; DeleteRecipe removes shelf memberships and marks
	// the recipe deleted in a single transaction.
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	FindRecipes(ctx context.Context, filter RecipeFilter) ([]*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, fields []Field) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error

	// Recipe tagging. Adds are unconditional (duplicates tolerated), removal
	// is an idempotent no-op when the pair is absent.
	AddRecipeTag(ctx context.Context, recipeID, tagID int64) (*domain.RecipeTag, error)
	RemoveRecipeTag(ctx context.Context, recipeID, tagID int64) error
	ListTagsForRecipe(ctx context.Context, recipeID int64) ([]*domain.Tag, error)

	// Shelves. Soft delete; the (user, label) pair is unique among live rows.
	CreateShelf(ctx context.Context, shelf *domain.Shelf) error
	GetShelf(ctx context.Context, id int64) (*domain.Shelf, error)
	ListShelves(ctx context.Context) ([]*domain.Shelf, error)
	ListShelvesByUser(ctx context.Context, userID int64) ([]*domain.Shelf, error)
	UpdateShelf(ctx context.Context, id int64, fields []Field) (*domain.Shelf, error)
	SoftDeleteShelf(ctx context.Context, id int64) error

	// Shelf membership. The pair is unique: a duplicate add is a Conflict and
	// removing a missing pair is NotFound. Remove returns the pre-deletion
	// snapshot.
	AddRecipeToShelf(ctx context.Context, shelfID, recipeID int64) (*domain.ShelfRecipe, error)
	RemoveRecipeFromShelf(ctx context.Context, shelfID, recipeID int64) (*domain.ShelfRecipe, error)
	ListRecipesForShelf(ctx context.Context, shelfID int64) ([]*domain.Recipe, error)

	// Tags. Values are not unique; hard delete.
	CreateTag(ctx context.Context, value string) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	SearchTags(ctx context.Context, term string) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, value string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	// Communities. Names are globally unique; hard delete.
	CreateCommunity(ctx context.Context, community *domain.Community) error
	GetCommunity(ctx context.Context, id int64) (*domain.Community, error)
	ListCommunities(ctx context.Context) ([]*domain.Community, error)
	ListCommunitiesByAdmin(ctx context.Context, adminID int64) ([]*domain.Community, error)
	UpdateCommunity(ctx context.Context, id int64, fields []Field) (*domain.Community, error)
	DeleteCommunity(ctx context.Context, id int64) error

	// Sessions back refresh-token rotation.
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, hash string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
