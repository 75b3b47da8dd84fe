package sqlite

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
)

// CreateTag inserts a new tag. Values are not deduplicated; two tags may
// carry the same text.
func (s *Store) CreateTag(ctx context.Context, value string) (*domain.Tag, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (value) VALUES (?)`, value)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Tag{ID: id, Value: value}, nil
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	var t domain.Tag
	err := s.db.QueryRowContext(ctx,
		`SELECT id, value FROM tags WHERE id = ?`, id).Scan(&t.ID, &t.Value)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("tag %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTags returns all tags ordered by ID.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.queryTags(ctx, `SELECT id, value FROM tags ORDER BY id`)
}

// SearchTags returns tags whose value contains the term, case-insensitively.
func (s *Store) SearchTags(ctx context.Context, term string) ([]*domain.Tag, error) {
	return s.queryTags(ctx,
		`SELECT id, value FROM tags WHERE value LIKE ? ESCAPE '\' ORDER BY id`,
		"%"+escapeLike(term)+"%")
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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

// UpdateTag replaces a tag's value and returns the refreshed row.
func (s *Store) UpdateTag(ctx context.Context, id int64, value string) (*domain.Tag, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tags SET value = ? WHERE id = ?`, value, id)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NotFoundf("tag %d not found", id)
	}
	return &domain.Tag{ID: id, Value: value}, nil
}

// DeleteTag performs a hard delete. The ON DELETE CASCADE on recipe_tags
// clears any recipes still carrying the tag.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFoundf("tag %d not found", id)
	}
	return nil
}
