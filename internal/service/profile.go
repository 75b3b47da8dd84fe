package service

import (
	"context"
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// ProfileService manages the one-per-user profile attached to an account.
type ProfileService struct {
	store  store.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(st store.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: st, logger: logger}
}

// GetProfile retrieves a user's profile, lazily creating an empty one if the
// account predates profiles or registration failed half-way.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	// Make sure the user exists first so a missing account stays a 404.
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfileByUser(ctx, userID)
	if errors.Is(err, errors.ErrNotFound) {
		return s.store.CreateProfile(ctx, userID)
	}
	return profile, err
}

// UpdateBio replaces the caller's own bio text.
func (s *ProfileService) UpdateBio(ctx context.Context, principalID, userID int64, bio string) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(principalID, profile); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProfileBio(ctx, userID, bio)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return updated, nil
}

// DeleteProfile removes the caller's own profile.
func (s *ProfileService) DeleteProfile(ctx context.Context, principalID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	profile, err := s.store.GetProfileByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(principalID, profile); err != nil {
		return err
	}

	if err := s.store.DeleteProfile(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("profile deleted", "user_id", userID)
	return nil
}
