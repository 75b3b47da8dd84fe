package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags, optionally filtered by a value substring",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Creates a new tag. Values are not unique; duplicate values yield distinct tags.",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Replaces a tag's value",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and detaches it from every recipe",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTag)
}

// === DTOs ===

// ListTagsInput contains parameters for listing tags.
type ListTagsInput struct {
	Query string `query:"q" required:"false" doc:"Value substring filter"`
}

// TagOutput wraps a single tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// GetTagInput contains parameters for fetching a tag.
type GetTagInput struct {
	ID int64 `path:"id" doc:"Tag ID"`
}

// TagValueRequest is the request body carrying a tag value.
type TagValueRequest struct {
	Value string `json:"value" doc:"Tag value"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body TagValueRequest
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   int64 `path:"id" doc:"Tag ID"`
	Body TagValueRequest
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: mapTagResponses(tags)}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.CreateTag(ctx, input.Body.Value)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: TagResponse{ID: tag.ID, Value: tag.Value}}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	tag, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: TagResponse{ID: tag.ID, Value: tag.Value}}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.UpdateTag(ctx, input.ID, input.Body.Value)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: TagResponse{ID: tag.ID, Value: tag.Value}}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *GetTagInput) (*MessageOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}
