package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/id"
	"github.com/platefulapp/plateful-server/internal/store"
)

// AuthService handles federated sign-in and token lifecycle. There is no
// password path: identity is asserted by an external provider and exchanged
// here for our own tokens.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(st store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{store: st, tokens: tokens, logger: logger}
}

// TokenPair is the result of a successful sign-in or refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SignIn exchanges a verified federated identity for our tokens, creating
// the account and its profile on first sign-in.
func (s *AuthService) SignIn(ctx context.Context, identity auth.FederatedIdentity) (*domain.User, *TokenPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if !identity.IsValid() {
		return nil, nil, errors.InvalidCredentials("identity is missing a subject or email")
	}

	user, err := s.store.GetUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		// Returning user. Keep the avatar fresh if the provider sent one.
		if identity.AvatarURL != "" && identity.AvatarURL != user.AvatarURL {
			updated, uerr := s.store.UpdateUser(ctx, user.ID, []store.Field{
				{Name: "avatar", Value: identity.AvatarURL},
			})
			if uerr == nil {
				user = updated
			}
		}
	case errors.Is(err, errors.ErrNotFound):
		user, err = s.register(ctx, identity)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("look up user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user signed in",
		"user_id", user.ID,
		"provider", identity.Provider,
	)

	return user, pair, nil
}

// register creates the account plus its empty profile.
func (s *AuthService) register(ctx context.Context, identity auth.FederatedIdentity) (*domain.User, error) {
	now := time.Now()
	user := &domain.User{
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Email:      identity.Email,
		ExternalID: identity.ExternalID,
		AvatarURL:  identity.AvatarURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Best effort; a missing profile is recreated on first profile access.
	if _, err := s.store.CreateProfile(ctx, user.ID); err != nil {
		s.logger.Warn("failed to create profile for new user",
			"user_id", user.ID,
			"error", err,
		)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"provider", identity.Provider,
	)

	return user, nil
}

// Refresh rotates a refresh token: the presented token's session is replaced
// by a new one and a fresh access token is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *TokenPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil, errors.Unauthorized("invalid refresh token")
		}
		return nil, nil, fmt.Errorf("look up session: %w", err)
	}

	if session.IsExpired() {
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, nil, errors.Unauthorized("refresh token expired")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		// The account was deleted out from under the session.
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, nil, errors.Unauthorized("account no longer active")
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return nil, nil, fmt.Errorf("rotate session: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Logout revokes the session behind a refresh token. Unknown tokens are
// ignored so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("look up session: %w", err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("user logged out", "user_id", session.UserID)
	return nil
}

// VerifyAccessToken validates an access token and returns its claims.
func (s *AuthService) VerifyAccessToken(token string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired access token")
	}
	return claims, nil
}

// PruneSessions removes expired refresh sessions. Called periodically from
// the server's housekeeping loop.
func (s *AuthService) PruneSessions(ctx context.Context) error {
	n, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	if n > 0 {
		s.logger.Info("pruned expired sessions", "count", n)
	}
	return nil
}

// issueTokens mints an access token and persists a refresh session.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.tokens.AccessTokenDuration()),
	}, nil
}
