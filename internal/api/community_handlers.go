package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerCommunityRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCommunities",
		Method:      http.MethodGet,
		Path:        "/api/v1/communities",
		Summary:     "List communities",
		Description: "Returns all communities",
		Tags:        []string{"Communities"},
	}, s.handleListCommunities)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyCommunities",
		Method:      http.MethodGet,
		Path:        "/api/v1/communities/mine",
		Summary:     "List my communities",
		Description: "Returns communities administered by the current user",
		Tags:        []string{"Communities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyCommunities)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCommunity",
		Method:      http.MethodPost,
		Path:        "/api/v1/communities",
		Summary:     "Create community",
		Description: "Creates a new community administered by the current user. Names are globally unique.",
		Tags:        []string{"Communities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateCommunity)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCommunity",
		Method:      http.MethodGet,
		Path:        "/api/v1/communities/{id}",
		Summary:     "Get community",
		Description: "Returns a community by ID",
		Tags:        []string{"Communities"},
	}, s.handleGetCommunity)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCommunity",
		Method:      http.MethodPatch,
		Path:        "/api/v1/communities/{id}",
		Summary:     "Update community",
		Description: "Updates community fields (admin only)",
		Tags:        []string{"Communities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCommunity)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCommunity",
		Method:      http.MethodDelete,
		Path:        "/api/v1/communities/{id}",
		Summary:     "Delete community",
		Description: "Deletes a community (admin only)",
		Tags:        []string{"Communities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCommunity)
}

// === DTOs ===

// CommunityResponse contains community data in API responses.
type CommunityResponse struct {
	ID            int64     `json:"id" doc:"Community ID"`
	Name          string    `json:"name" doc:"Community name"`
	Description   string    `json:"description,omitempty" doc:"Community description"`
	Image         string    `json:"image,omitempty" doc:"Community image URL"`
	AdminID       int64     `json:"admin_id" doc:"Administering user ID"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation time"`
	LastUpdatedAt time.Time `json:"last_updated_at" doc:"Last update time"`
}

// ListCommunitiesResponse contains a list of communities.
type ListCommunitiesResponse struct {
	Communities []CommunityResponse `json:"communities" doc:"Communities"`
}

// ListCommunitiesOutput wraps the community listing for Huma.
type ListCommunitiesOutput struct {
	Body ListCommunitiesResponse
}

// CommunityOutput wraps a single community response for Huma.
type CommunityOutput struct {
	Body CommunityResponse
}

// GetCommunityInput contains parameters for fetching a community.
type GetCommunityInput struct {
	ID int64 `path:"id" doc:"Community ID"`
}

// CreateCommunityRequest is the request body for creating a community.
type CreateCommunityRequest struct {
	Name        string `json:"name" doc:"Community name, globally unique"`
	Description string `json:"description,omitempty" doc:"Community description"`
	Image       string `json:"image,omitempty" doc:"Community image URL"`
}

// CreateCommunityInput wraps the create community request for Huma.
type CreateCommunityInput struct {
	Body CreateCommunityRequest
}

// UpdateCommunityRequest is the request body for updating a community.
// Absent fields are left untouched.
type UpdateCommunityRequest struct {
	Name        *string `json:"name,omitempty" doc:"New name"`
	Description *string `json:"description,omitempty" doc:"New description"`
	Image       *string `json:"image,omitempty" doc:"New image URL"`
}

// UpdateCommunityInput wraps the update community request for Huma.
type UpdateCommunityInput struct {
	ID   int64 `path:"id" doc:"Community ID"`
	Body UpdateCommunityRequest
}

// === Handlers ===

func (s *Server) handleListCommunities(ctx context.Context, _ *struct{}) (*ListCommunitiesOutput, error) {
	communities, err := s.services.Community.ListCommunities(ctx)
	if err != nil {
		return nil, err
	}

	return &ListCommunitiesOutput{Body: ListCommunitiesResponse{Communities: mapCommunityResponses(communities)}}, nil
}

func (s *Server) handleListMyCommunities(ctx context.Context, _ *struct{}) (*ListCommunitiesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	communities, err := s.services.Community.ListMyCommunities(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ListCommunitiesOutput{Body: ListCommunitiesResponse{Communities: mapCommunityResponses(communities)}}, nil
}

func (s *Server) handleCreateCommunity(ctx context.Context, input *CreateCommunityInput) (*CommunityOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	community, err := s.services.Community.CreateCommunity(ctx, userID, service.CreateCommunityParams{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Image:       input.Body.Image,
	})
	if err != nil {
		return nil, err
	}

	return &CommunityOutput{Body: mapCommunityResponse(community)}, nil
}

func (s *Server) handleGetCommunity(ctx context.Context, input *GetCommunityInput) (*CommunityOutput, error) {
	community, err := s.services.Community.GetCommunity(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CommunityOutput{Body: mapCommunityResponse(community)}, nil
}

func (s *Server) handleUpdateCommunity(ctx context.Context, input *UpdateCommunityInput) (*CommunityOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	community, err := s.services.Community.UpdateCommunity(ctx, userID, input.ID, service.UpdateCommunityParams{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Image:       input.Body.Image,
	})
	if err != nil {
		return nil, err
	}

	return &CommunityOutput{Body: mapCommunityResponse(community)}, nil
}

func (s *Server) handleDeleteCommunity(ctx context.Context, input *GetCommunityInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Community.DeleteCommunity(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Community deleted"}}, nil
}

// === Mappers ===

func mapCommunityResponse(c *domain.Community) CommunityResponse {
	return CommunityResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Image:         c.Image,
		AdminID:       c.AdminID,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

func mapCommunityResponses(communities []*domain.Community) []CommunityResponse {
	resp := make([]CommunityResponse, len(communities))
	for i, c := range communities {
		resp[i] = mapCommunityResponse(c)
	}
	return resp
}
