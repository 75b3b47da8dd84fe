// Package service contains the application's business logic. Services sit
// between the HTTP layer and the store: they validate input, enforce
// ownership, and orchestrate multi-step operations.
package service

import (
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// Services bundles every service for injection into the HTTP layer.
type Services struct {
	Auth      *AuthService
	User      *UserService
	Profile   *ProfileService
	Recipe    *RecipeService
	Shelf     *ShelfService
	Tag       *TagService
	Community *CommunityService
}

// New wires up all services against a single store.
func New(st store.Store, tokens *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(st, tokens, logger),
		User:      NewUserService(st, logger),
		Profile:   NewProfileService(st, logger),
		Recipe:    NewRecipeService(st, logger),
		Shelf:     NewShelfService(st, logger),
		Tag:       NewTagService(st, logger),
		Community: NewCommunityService(st, validator, logger),
	}
}
