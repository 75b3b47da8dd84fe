package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// CommunityService manages admin-owned communities.
type CommunityService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCommunityService creates a new community service.
func NewCommunityService(st store.Store, validator *validation.Validator, logger *slog.Logger) *CommunityService {
	return &CommunityService{store: st, validator: validator, logger: logger}
}

// CreateCommunityParams carries the fields of a new community.
type CreateCommunityParams struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

// CreateCommunity creates a community administered by the principal.
// Names are globally unique.
func (s *CommunityService) CreateCommunity(ctx context.Context, principalID int64, params CreateCommunityParams) (*domain.Community, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	now := time.Now()
	community := &domain.Community{
		Name:          params.Name,
		Description:   params.Description,
		Image:         params.Image,
		AdminID:       principalID,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.store.CreateCommunity(ctx, community); err != nil {
		return nil, err
	}

	s.logger.Info("community created",
		"community_id", community.ID,
		"admin_id", principalID,
		"name", params.Name,
	)

	return community, nil
}

// GetCommunity retrieves a community by ID. Communities are public.
func (s *CommunityService) GetCommunity(ctx context.Context, id int64) (*domain.Community, error) {
	return s.store.GetCommunity(ctx, id)
}

// ListCommunities returns all communities.
func (s *CommunityService) ListCommunities(ctx context.Context) ([]*domain.Community, error) {
	return s.store.ListCommunities(ctx)
}

// ListMyCommunities returns the communities the principal administers.
func (s *CommunityService) ListMyCommunities(ctx context.Context, principalID int64) ([]*domain.Community, error) {
	return s.store.ListCommunitiesByAdmin(ctx, principalID)
}

// UpdateCommunityParams is the allow-listed set of editable community
// fields. Nil means "leave unchanged". Admin handover is intentionally
// not supported.
type UpdateCommunityParams struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

// UpdateCommunity applies a partial update to a community the principal
// administers.
func (s *CommunityService) UpdateCommunity(ctx context.Context, principalID, communityID int64, params UpdateCommunityParams) (*domain.Community, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	community, err := s.store.GetCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, community); err != nil {
		return nil, err
	}

	var fields []store.Field
	if params.Name != nil {
		fields = append(fields, store.Field{Name: "name", Value: *params.Name})
	}
	if params.Description != nil {
		fields = append(fields, store.Field{Name: "description", Value: *params.Description})
	}
	if params.Image != nil {
		fields = append(fields, store.Field{Name: "image", Value: *params.Image})
	}

	updated, err := s.store.UpdateCommunity(ctx, communityID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("community updated", "community_id", communityID, "admin_id", principalID)
	return updated, nil
}

// DeleteCommunity removes a community the principal administers.
func (s *CommunityService) DeleteCommunity(ctx context.Context, principalID, communityID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	community, err := s.store.GetCommunity(ctx, communityID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(principalID, community); err != nil {
		return err
	}

	if err := s.store.DeleteCommunity(ctx, communityID); err != nil {
		return err
	}

	s.logger.Info("community deleted", "community_id", communityID, "admin_id", principalID)
	return nil
}
