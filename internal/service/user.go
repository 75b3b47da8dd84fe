package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// UserService handles account reads and self-service account management.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: st, logger: logger}
}

// GetUser retrieves a live user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

// ListUsers returns all live users.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateUserParams is the allow-listed set of self-editable account fields.
// Nil means "leave unchanged".
type UpdateUserParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	AvatarURL *string
}

// UpdateUser applies a partial update to the caller's own account.
func (s *UserService) UpdateUser(ctx context.Context, principalID, userID int64, params UpdateUserParams) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if principalID != userID {
		return nil, errors.Forbidden("you can only modify your own account")
	}

	var fields []store.Field
	if params.FirstName != nil {
		fields = append(fields, store.Field{Name: "firstName", Value: *params.FirstName})
	}
	if params.LastName != nil {
		fields = append(fields, store.Field{Name: "lastName", Value: *params.LastName})
	}
	if params.Email != nil {
		fields = append(fields, store.Field{Name: "email", Value: *params.Email})
	}
	if params.AvatarURL != nil {
		fields = append(fields, store.Field{Name: "avatar", Value: *params.AvatarURL})
	}

	user, err := s.store.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", userID)
	return user, nil
}

// DeleteUser soft-deletes the caller's own account. The profile row is
// removed immediately; refresh sessions are left to expire.
func (s *UserService) DeleteUser(ctx context.Context, principalID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if principalID != userID {
		return errors.Forbidden("you can only delete your own account")
	}

	if err := s.store.SoftDeleteUser(ctx, userID); err != nil {
		return err
	}

	if err := s.store.DeleteProfile(ctx, userID); err != nil && !errors.Is(err, errors.ErrNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
