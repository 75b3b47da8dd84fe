package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// TagService manages the shared tag vocabulary. Tags are a folksonomy:
// any signed-in user can create, rename, or delete them, and values are
// deliberately not deduplicated.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: st, logger: logger}
}

// CreateTag creates a tag with the given value.
func (s *TagService) CreateTag(ctx context.Context, value string) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.BadRequest("tag value cannot be empty")
	}

	tag, err := s.store.CreateTag(ctx, value)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "value", value)
	return tag, nil
}

// GetTag retrieves a tag by ID.
func (s *TagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.store.GetTag(ctx, id)
}

// ListTags returns all tags, or a substring search when term is non-empty.
func (s *TagService) ListTags(ctx context.Context, term string) ([]*domain.Tag, error) {
	if term = strings.TrimSpace(term); term != "" {
		return s.store.SearchTags(ctx, term)
	}
	return s.store.ListTags(ctx)
}

// UpdateTag renames a tag.
func (s *TagService) UpdateTag(ctx context.Context, id int64, value string) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.BadRequest("tag value cannot be empty")
	}

	tag, err := s.store.UpdateTag(ctx, id, value)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "tag_id", id, "value", value)
	return tag, nil
}

// DeleteTag removes a tag everywhere, including from tagged recipes.
func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "tag_id", id)
	return nil
}
