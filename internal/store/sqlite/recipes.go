package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// recipeColumns is the ordered list of columns selected in recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, title, description, image_url, author_id, visibility_id, uploaded_at, last_updated_at, deleted_at`

// scanRecipe scans a sql.Row (or sql.Rows via its Scan method) into a domain.Recipe.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		description   sql.NullString
		imageURL      sql.NullString
		uploadedAt    string
		lastUpdatedAt string
		deletedAt     sql.NullString
	)

	err := scanner.Scan(
		&r.ID,
		&r.Title,
		&description,
		&imageURL,
		&r.AuthorID,
		&r.Visibility,
		&uploadedAt,
		&lastUpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		r.Description = description.String
	}
	if imageURL.Valid {
		r.ImageURL = imageURL.String
	}

	r.UploadedAt, err = parseTime(uploadedAt)
	if err != nil {
		return nil, err
	}
	r.LastUpdatedAt, err = parseTime(lastUpdatedAt)
	if err != nil {
		return nil, err
	}
	r.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a new recipe and assigns its generated ID.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO recipes (
			title, description, image_url, author_id, visibility_id,
			uploaded_at, last_updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.Title,
		nullString(recipe.Description),
		nullString(recipe.ImageURL),
		recipe.AuthorID,
		recipe.Visibility,
		formatTime(recipe.UploadedAt),
		formatTime(recipe.LastUpdatedAt),
		nullTimeString(recipe.DeletedAt),
	)
	if err != nil {
		return err
	}

	recipe.ID, err = result.LastInsertId()
	return err
}

// GetRecipe retrieves a live recipe by ID.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND deleted_at IS NULL`, id)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("recipe %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindRecipes returns live recipes matching the filter, most recently
// updated first.
func (s *Store) FindRecipes(ctx context.Context, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE deleted_at IS NULL`
	var args []any

	if filter.AuthorID != 0 {
		query += ` AND author_id = ?`
		args = append(args, filter.AuthorID)
	}
	switch {
	case filter.PublicOnly:
		query += ` AND visibility_id = ?`
		args = append(args, domain.VisibilityPublic)
	case filter.Visibility != 0:
		query += ` AND visibility_id = ?`
		args = append(args, filter.Visibility)
	}
	if filter.TitleSearch != "" {
		query += ` AND title LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter.TitleSearch)+"%")
	}

	query += ` ORDER BY last_updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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

var recipeUpdateColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"image":       "image_url",
	"visibility":  "visibility_id",
}

// UpdateRecipe applies a partial update, advances last_updated_at, and
// returns the refreshed row.
func (s *Store) UpdateRecipe(ctx context.Context, id int64, fields []store.Field) (*domain.Recipe, error) {
	clause, args, err := store.BuildUpdate(fields, recipeUpdateColumns)
	if err != nil {
		return nil, err
	}

	args = append(args, formatTime(timeNow()), id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET `+clause+`, last_updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		args...,
	)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NotFoundf("recipe %d not found", id)
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe from every shelf and marks it deleted in
// a single transaction, so no shelf is left pointing at a recipe that is
// gone.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shelf_recipes WHERE recipe_id = ?`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE recipes SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
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
		return errors.NotFoundf("recipe %d not found", id)
	}

	return tx.Commit()
}

// AddRecipeTag applies a tag to a recipe. The insert is unconditional;
// tagging the same recipe twice with the same tag produces two rows.
func (s *Store) AddRecipeTag(ctx context.Context, recipeID, tagID int64) (*domain.RecipeTag, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`,
		recipeID, tagID,
	); err != nil {
		return nil, err
	}
	return &domain.RecipeTag{RecipeID: recipeID, TagID: tagID}, nil
}

// RemoveRecipeTag deletes every matching pairing. Removing an absent pair
// is a no-op.
func (s *Store) RemoveRecipeTag(ctx context.Context, recipeID, tagID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM recipe_tags WHERE recipe_id = ? AND tag_id = ?`,
		recipeID, tagID,
	)
	return err
}

// ListTagsForRecipe returns the distinct tags applied to a recipe.
func (s *Store) ListTagsForRecipe(ctx context.Context, recipeID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT t.id, t.value
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = ?
		ORDER BY t.id`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Value); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// escapeLike escapes LIKE metacharacters in a user-supplied search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
