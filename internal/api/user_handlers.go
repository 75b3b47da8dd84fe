package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all live user accounts",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCurrentUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update current user",
		Description: "Updates the authenticated user's account fields",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCurrentUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me",
		Summary:     "Delete current user",
		Description: "Soft-deletes the authenticated user's account, freeing its email for re-registration",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user account by ID",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/profile",
		Summary:     "Get user profile",
		Description: "Returns a user's public profile",
		Tags:        []string{"Profiles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUserProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMyProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me/profile",
		Summary:     "Update my profile",
		Description: "Replaces the authenticated user's bio text",
		Tags:        []string{"Profiles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMyProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMyProfile",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me/profile",
		Summary:     "Delete my profile",
		Description: "Removes the authenticated user's profile",
		Tags:        []string{"Profiles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteMyProfile)
}

// === DTOs ===

// ListUsersResponse contains a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"Live user accounts"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// UserOutput wraps a single user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// GetUserInput contains parameters for fetching a user.
type GetUserInput struct {
	ID int64 `path:"id" doc:"User ID"`
}

// UpdateUserRequest is the request body for updating an account.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" doc:"New first name"`
	LastName  *string `json:"last_name,omitempty" doc:"New last name"`
	Email     *string `json:"email,omitempty" format:"email" doc:"New email address"`
	AvatarURL *string `json:"avatar_url,omitempty" doc:"New avatar URL"`
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	Body UpdateUserRequest
}

// ProfileResponse contains profile data in API responses.
type ProfileResponse struct {
	ID     int64  `json:"id" doc:"Profile ID"`
	UserID int64  `json:"user_id" doc:"Owning user ID"`
	Bio    string `json:"bio" doc:"Profile bio text"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// GetProfileInput contains parameters for fetching a profile.
type GetProfileInput struct {
	ID int64 `path:"id" doc:"User ID"`
}

// UpdateProfileRequest is the request body for updating a profile.
type UpdateProfileRequest struct {
	Bio string `json:"bio" doc:"New bio text"`
}

// UpdateProfileInput wraps the update profile request for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, user := range users {
		resp[i] = mapUserResponse(user)
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.User.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleUpdateCurrentUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.UpdateUser(ctx, userID, userID, service.UpdateUserParams{
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Email:     input.Body.Email,
		AvatarURL: input.Body.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleDeleteCurrentUser(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.DeleteUser(ctx, userID, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Account deleted"}}, nil
}

func (s *Server) handleGetUserProfile(ctx context.Context, input *GetProfileInput) (*ProfileOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleUpdateMyProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.UpdateBio(ctx, userID, userID, input.Body.Bio)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleDeleteMyProfile(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Profile.DeleteProfile(ctx, userID, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Profile deleted"}}, nil
}

// === Mappers ===

func mapProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:     profile.ID,
		UserID: profile.UserID,
		Bio:    profile.Bio,
	}
}
