package sqlite

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// shelfColumns is the ordered list of columns selected in shelf queries.
// Must match the scan order in scanShelf.
const shelfColumns = `id, user_id, label, created_at, updated_at, deleted_at`

// scanShelf scans a sql.Row (or sql.Rows via its Scan method) into a domain.Shelf.
func scanShelf(scanner interface{ Scan(dest ...any) error }) (*domain.Shelf, error) {
	var sh domain.Shelf

	var (
		createdAt string
		updatedAt string
		deletedAt sql.NullString
	)

	err := scanner.Scan(
		&sh.ID,
		&sh.UserID,
		&sh.Label,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	sh.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sh.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	sh.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	return &sh, nil
}

// CreateShelf inserts a new shelf and assigns its generated ID.
// Returns a Conflict error when the user already has a live shelf with the
// same label.
func (s *Store) CreateShelf(ctx context.Context, shelf *domain.Shelf) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO shelves (user_id, label, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?)`,
		shelf.UserID,
		shelf.Label,
		formatTime(shelf.CreatedAt),
		formatTime(shelf.UpdatedAt),
		nullTimeString(shelf.DeletedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflictf("shelf %q already exists for this user", shelf.Label)
		}
		return err
	}

	shelf.ID, err = result.LastInsertId()
	return err
}

// GetShelf retrieves a live shelf by ID.
func (s *Store) GetShelf(ctx context.Context, id int64) (*domain.Shelf, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shelfColumns+` FROM shelves WHERE id = ? AND deleted_at IS NULL`, id)

	sh, err := scanShelf(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("shelf %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// ListShelves returns all live shelves ordered by creation time.
func (s *Store) ListShelves(ctx context.Context) ([]*domain.Shelf, error) {
	return s.queryShelves(ctx,
		`SELECT `+shelfColumns+` FROM shelves WHERE deleted_at IS NULL ORDER BY created_at`)
}

// ListShelvesByUser returns a user's live shelves ordered by creation time.
func (s *Store) ListShelvesByUser(ctx context.Context, userID int64) ([]*domain.Shelf, error) {
	return s.queryShelves(ctx,
		`SELECT `+shelfColumns+` FROM shelves WHERE user_id = ? AND deleted_at IS NULL ORDER BY created_at`,
		userID)
}

func (s *Store) queryShelves(ctx context.Context, query string, args ...any) ([]*domain.Shelf, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelves []*domain.Shelf
	for rows.Next() {
		sh, err := scanShelf(rows)
		if err != nil {
			return nil, err
		}
		shelves = append(shelves, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shelves, nil
}

var shelfUpdateColumns = map[string]string{
	"label": "label",
}

// UpdateShelf applies a partial update and returns the refreshed row.
func (s *Store) UpdateShelf(ctx context.Context, id int64, fields []store.Field) (*domain.Shelf, error) {
	clause, args, err := store.BuildUpdate(fields, shelfUpdateColumns)
	if err != nil {
		return nil, err
	}

	args = append(args, formatTime(timeNow()), id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE shelves SET `+clause+`, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		args...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflict("a shelf with that label already exists for this user")
		}
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NotFoundf("shelf %d not found", id)
	}

	return s.GetShelf(ctx, id)
}

// SoftDeleteShelf marks a shelf as deleted, freeing its label for reuse.
func (s *Store) SoftDeleteShelf(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE shelves SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(timeNow()), id,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFoundf("shelf %d not found", id)
	}
	return nil
}

// AddRecipeToShelf places a recipe on a shelf.
// Returns a Conflict error when the recipe is already on the shelf.
func (s *Store) AddRecipeToShelf(ctx context.Context, shelfID, recipeID int64) (*domain.ShelfRecipe, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO shelf_recipes (shelf_id, recipe_id) VALUES (?, ?)`,
		shelfID, recipeID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflictf("recipe %d is already on shelf %d", recipeID, shelfID)
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.ShelfRecipe{ID: id, ShelfID: shelfID, RecipeID: recipeID}, nil
}

// RemoveRecipeFromShelf takes a recipe off a shelf and returns the removed
// membership row. Removing an absent pairing returns NotFound.
func (s *Store) RemoveRecipeFromShelf(ctx context.Context, shelfID, recipeID int64) (*domain.ShelfRecipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, shelf_id, recipe_id FROM shelf_recipes WHERE shelf_id = ? AND recipe_id = ?`,
		shelfID, recipeID,
	)

	var sr domain.ShelfRecipe
	err := row.Scan(&sr.ID, &sr.ShelfID, &sr.RecipeID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("recipe %d is not on shelf %d", recipeID, shelfID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM shelf_recipes WHERE id = ?`, sr.ID); err != nil {
		return nil, err
	}
	return &sr, nil
}

// ListRecipesForShelf returns the live recipes on a shelf, most recently
// updated first. Soft-deleted recipes never appear even if a stale
// membership row survives.
func (s *Store) ListRecipesForShelf(ctx context.Context, shelfID int64) ([]*domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.description, r.image_url, r.author_id,
		       r.visibility_id, r.uploaded_at, r.last_updated_at, r.deleted_at
		FROM recipes r
		JOIN shelf_recipes sr ON sr.recipe_id = r.id
		WHERE sr.shelf_id = ? AND r.deleted_at IS NULL
		ORDER BY r.last_updated_at DESC`, shelfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recipes, nil
}
