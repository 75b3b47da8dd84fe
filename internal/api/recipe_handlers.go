package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPublicRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List public recipes",
		Description: "Returns public recipes with author info, optionally filtered by title substring. No authentication required.",
		Tags:        []string{"Recipes"},
	}, s.handleListPublicRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/mine",
		Summary:     "List my recipes",
		Description: "Returns every live recipe authored by the current user regardless of visibility",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "createRecipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes",
		Summary:     "Create recipe",
		Description: "Creates a new recipe authored by the current user",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe by ID, subject to its visibility",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Updates recipe fields (author only)",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Soft-deletes a recipe and removes it from all shelves (author only)",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipeTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}/tags",
		Summary:     "List recipe tags",
		Description: "Returns the distinct tags applied to a recipe, subject to its visibility",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipeTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "tagRecipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/{id}/tags",
		Summary:     "Tag recipe",
		Description: "Applies an existing tag to a recipe (author only)",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTagRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "untagRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}/tags/{tagId}",
		Summary:     "Untag recipe",
		Description: "Removes a tag from a recipe (author only). Removing an absent tag is a no-op.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUntagRecipe)
}

// === DTOs ===

// RecipeResponse contains recipe data in API responses.
type RecipeResponse struct {
	ID            int64     `json:"id" doc:"Recipe ID"`
	Title         string    `json:"title" doc:"Recipe title"`
	Description   string    `json:"description" doc:"Recipe description"`
	Image         string    `json:"image,omitempty" doc:"Recipe image URL"`
	AuthorID      int64     `json:"author_id" doc:"Authoring user ID"`
	VisibilityID  int       `json:"visibility_id" doc:"Visibility level (1=public, 2=community, 3=private)"`
	UploadedAt    time.Time `json:"uploaded_at" doc:"Creation time"`
	LastUpdatedAt time.Time `json:"last_updated_at" doc:"Last update time"`
}

// RecipeWithAuthorResponse is a recipe enriched with its author.
type RecipeWithAuthorResponse struct {
	RecipeResponse
	Author *UserResponse `json:"author,omitempty" doc:"Recipe author, absent when the account is gone"`
}

// ListRecipesInput contains parameters for the public recipe listing.
type ListRecipesInput struct {
	Query string `query:"q" required:"false" doc:"Title substring filter"`
}

// ListRecipesResponse contains the public recipe listing.
type ListRecipesResponse struct {
	Recipes []RecipeWithAuthorResponse `json:"recipes" doc:"Public recipes, most recently updated first"`
}

// ListRecipesOutput wraps the recipe listing for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// ListMyRecipesResponse contains the caller's own recipes.
type ListMyRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"Recipes authored by the current user"`
}

// ListMyRecipesOutput wraps the caller's recipe listing for Huma.
type ListMyRecipesOutput struct {
	Body ListMyRecipesResponse
}

// CreateRecipeRequest is the request body for creating a recipe.
type CreateRecipeRequest struct {
	Title        string `json:"title" doc:"Recipe title"`
	Description  string `json:"description,omitempty" doc:"Recipe description"`
	Image        string `json:"image,omitempty" doc:"Recipe image URL"`
	VisibilityID int    `json:"visibility_id,omitempty" doc:"Visibility level, defaults to public"`
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Body CreateRecipeRequest
}

// RecipeOutput wraps a single recipe response for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// GetRecipeInput contains parameters for fetching a recipe.
type GetRecipeInput struct {
	ID int64 `path:"id" doc:"Recipe ID"`
}

// UpdateRecipeRequest is the request body for updating a recipe.
// Absent fields are left untouched.
type UpdateRecipeRequest struct {
	Title        *string `json:"title,omitempty" doc:"New title"`
	Description  *string `json:"description,omitempty" doc:"New description"`
	Image        *string `json:"image,omitempty" doc:"New image URL"`
	VisibilityID *int    `json:"visibility_id,omitempty" doc:"New visibility level"`
}

// UpdateRecipeInput wraps the update recipe request for Huma.
type UpdateRecipeInput struct {
	ID   int64 `path:"id" doc:"Recipe ID"`
	Body UpdateRecipeRequest
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID    int64  `json:"id" doc:"Tag ID"`
	Value string `json:"value" doc:"Tag value"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags"`
}

// ListTagsOutput wraps the tag listing for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// TagRecipeRequest is the request body for tagging a recipe.
type TagRecipeRequest struct {
	TagID int64 `json:"tag_id" doc:"Tag ID to apply"`
}

// TagRecipeInput wraps the tag recipe request for Huma.
type TagRecipeInput struct {
	ID   int64 `path:"id" doc:"Recipe ID"`
	Body TagRecipeRequest
}

// RecipeTagResponse is a tag membership row on a recipe.
type RecipeTagResponse struct {
	RecipeID int64 `json:"recipe_id" doc:"Recipe ID"`
	TagID    int64 `json:"tag_id" doc:"Tag ID"`
}

// RecipeTagOutput wraps the recipe tag response for Huma.
type RecipeTagOutput struct {
	Body RecipeTagResponse
}

// UntagRecipeInput contains parameters for removing a tag from a recipe.
type UntagRecipeInput struct {
	ID    int64 `path:"id" doc:"Recipe ID"`
	TagID int64 `path:"tagId" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListPublicRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error) {
	recipes, err := s.services.Recipe.ListPublicRecipes(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeWithAuthorResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = mapRecipeWithAuthor(r)
	}

	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleListMyRecipes(ctx context.Context, _ *struct{}) (*ListMyRecipesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Recipe.ListMyRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = mapRecipeResponse(r)
	}

	return &ListMyRecipesOutput{Body: ListMyRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.CreateRecipe(ctx, userID, service.CreateRecipeParams{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		ImageURL:    input.Body.Image,
		Visibility:  domain.Visibility(input.Body.VisibilityID),
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *GetRecipeInput) (*RecipeOutput, error) {
	recipe, err := s.services.Recipe.GetRecipe(ctx, principalID(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	params := service.UpdateRecipeParams{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		ImageURL:    input.Body.Image,
	}
	if input.Body.VisibilityID != nil {
		vis := domain.Visibility(*input.Body.VisibilityID)
		params.Visibility = &vis
	}

	recipe, err := s.services.Recipe.UpdateRecipe(ctx, userID, input.ID, params)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(recipe)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *GetRecipeInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.DeleteRecipe(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func (s *Server) handleListRecipeTags(ctx context.Context, input *GetRecipeInput) (*ListTagsOutput, error) {
	tags, err := s.services.Recipe.ListRecipeTags(ctx, principalID(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: mapTagResponses(tags)}}, nil
}

func (s *Server) handleTagRecipe(ctx context.Context, input *TagRecipeInput) (*RecipeTagOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	rt, err := s.services.Recipe.TagRecipe(ctx, userID, input.ID, input.Body.TagID)
	if err != nil {
		return nil, err
	}

	return &RecipeTagOutput{Body: RecipeTagResponse{RecipeID: rt.RecipeID, TagID: rt.TagID}}, nil
}

func (s *Server) handleUntagRecipe(ctx context.Context, input *UntagRecipeInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.UntagRecipe(ctx, userID, input.ID, input.TagID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag removed"}}, nil
}

// === Mappers ===

func mapRecipeResponse(recipe *domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:            recipe.ID,
		Title:         recipe.Title,
		Description:   recipe.Description,
		Image:         recipe.ImageURL,
		AuthorID:      recipe.AuthorID,
		VisibilityID:  int(recipe.Visibility),
		UploadedAt:    recipe.UploadedAt,
		LastUpdatedAt: recipe.LastUpdatedAt,
	}
}

func mapRecipeWithAuthor(r *service.RecipeWithAuthor) RecipeWithAuthorResponse {
	resp := RecipeWithAuthorResponse{RecipeResponse: mapRecipeResponse(r.Recipe)}
	if r.Author != nil {
		author := mapUserResponse(r.Author)
		resp.Author = &author
	}
	return resp
}

func mapTagResponses(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = TagResponse{ID: tag.ID, Value: tag.Value}
	}
	return resp
}
