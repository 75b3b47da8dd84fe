package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "signIn",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signin",
		Summary:     "Federated sign-in",
		Description: "Exchanges a verified federated identity for access and refresh tokens. Creates the account on first sign-in.",
		Tags:        []string{"Authentication"},
	}, s.handleSignIn)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a refresh token for new tokens",
		Tags:        []string{"Authentication"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Revokes the session behind a refresh token",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)
}

// === DTOs ===

// SignInRequest carries a federated identity asserted by the login provider.
type SignInRequest struct {
	Provider   string `json:"provider" doc:"Identity provider name (google, apple, ...)"`
	ExternalID string `json:"external_id" doc:"Provider-scoped subject identifier"`
	Email      string `json:"email" format:"email" doc:"Verified email address"`
	FirstName  string `json:"first_name,omitempty" doc:"First name from the provider"`
	LastName   string `json:"last_name,omitempty" doc:"Last name from the provider"`
	AvatarURL  string `json:"avatar_url,omitempty" doc:"Avatar URL from the provider"`
}

// SignInInput wraps the sign-in request for Huma.
type SignInInput struct {
	Body SignInRequest
}

// UserResponse contains user information in API responses.
type UserResponse struct {
	ID        int64     `json:"id" doc:"User ID"`
	FirstName string    `json:"first_name" doc:"First name"`
	LastName  string    `json:"last_name" doc:"Last name"`
	Email     string    `json:"email" doc:"Email address"`
	AvatarURL string    `json:"avatar_url,omitempty" doc:"Avatar URL"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// AuthResponse contains authentication tokens and user info.
type AuthResponse struct {
	AccessToken  string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken string       `json:"refresh_token" doc:"Opaque refresh token"`
	TokenType    string       `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresAt    time.Time    `json:"expires_at" doc:"Access token expiry"`
	User         UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" doc:"Refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutRequest is the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" doc:"Refresh token to revoke"`
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body LogoutRequest
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleSignIn(ctx context.Context, input *SignInInput) (*AuthOutput, error) {
	identity := auth.FederatedIdentity{
		Provider:   input.Body.Provider,
		ExternalID: input.Body.ExternalID,
		Email:      input.Body.Email,
		FirstName:  input.Body.FirstName,
		LastName:   input.Body.LastName,
		AvatarURL:  input.Body.AvatarURL,
	}

	user, pair, err := s.services.Auth.SignIn(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(user, pair)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	user, pair, err := s.services.Auth.Refresh(ctx, input.Body.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(user, pair)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Logged out successfully"}}, nil
}

// === Mappers ===

func mapUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func mapAuthResponse(user *domain.User, pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    pair.ExpiresAt,
		User:         mapUserResponse(user),
	}
}
