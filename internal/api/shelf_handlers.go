package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/domain"
)

func (s *Server) registerShelfRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMyShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves",
		Summary:     "List my shelves",
		Description: "Returns all live shelves owned by the current user",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyShelves)

	huma.Register(s.api, huma.Operation{
		OperationID: "createShelf",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves",
		Summary:     "Create shelf",
		Description: "Creates a new shelf for organizing recipes. Labels are unique per user among live shelves.",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShelf",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Get shelf",
		Description: "Returns a shelf by ID (owner only)",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateShelf",
		Method:      http.MethodPatch,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Rename shelf",
		Description: "Renames a shelf (owner only)",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Delete shelf",
		Description: "Soft-deletes a shelf, freeing its label for reuse (owner only)",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "listShelfRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{id}/recipes",
		Summary:     "List shelf recipes",
		Description: "Returns the live recipes on a shelf (owner only)",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListShelfRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "addRecipeToShelf",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves/{id}/recipes",
		Summary:     "Add recipe to shelf",
		Description: "Places a recipe on a shelf (owner only). Shelving the same recipe twice is a conflict.",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddRecipeToShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeRecipeFromShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}/recipes/{recipeId}",
		Summary:     "Remove recipe from shelf",
		Description: "Takes a recipe off a shelf (owner only)",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveRecipeFromShelf)
}

// === DTOs ===

// ShelfResponse contains shelf data in API responses.
type ShelfResponse struct {
	ID        int64     `json:"id" doc:"Shelf ID"`
	UserID    int64     `json:"user_id" doc:"Owning user ID"`
	Label     string    `json:"label" doc:"Shelf label"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListShelvesResponse contains a list of shelves.
type ListShelvesResponse struct {
	Shelves []ShelfResponse `json:"shelves" doc:"Shelves owned by the current user"`
}

// ListShelvesOutput wraps the shelf listing for Huma.
type ListShelvesOutput struct {
	Body ListShelvesResponse
}

// CreateShelfRequest is the request body for creating a shelf.
type CreateShelfRequest struct {
	Label string `json:"label" doc:"Shelf label, unique per user among live shelves"`
}

// CreateShelfInput wraps the create shelf request for Huma.
type CreateShelfInput struct {
	Body CreateShelfRequest
}

// ShelfOutput wraps a single shelf response for Huma.
type ShelfOutput struct {
	Body ShelfResponse
}

// GetShelfInput contains parameters for fetching a shelf.
type GetShelfInput struct {
	ID int64 `path:"id" doc:"Shelf ID"`
}

// UpdateShelfRequest is the request body for renaming a shelf.
type UpdateShelfRequest struct {
	Label string `json:"label" doc:"New shelf label"`
}

// UpdateShelfInput wraps the rename shelf request for Huma.
type UpdateShelfInput struct {
	ID   int64 `path:"id" doc:"Shelf ID"`
	Body UpdateShelfRequest
}

// ListShelfRecipesResponse contains the recipes on a shelf.
type ListShelfRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"Live recipes on the shelf"`
}

// ListShelfRecipesOutput wraps the shelf recipe listing for Huma.
type ListShelfRecipesOutput struct {
	Body ListShelfRecipesResponse
}

// AddRecipeToShelfRequest is the request body for shelving a recipe.
type AddRecipeToShelfRequest struct {
	RecipeID int64 `json:"recipe_id" doc:"Recipe ID to add"`
}

// AddRecipeToShelfInput wraps the add recipe request for Huma.
type AddRecipeToShelfInput struct {
	ID   int64 `path:"id" doc:"Shelf ID"`
	Body AddRecipeToShelfRequest
}

// ShelfRecipeResponse is a membership row placing a recipe on a shelf.
type ShelfRecipeResponse struct {
	ID       int64 `json:"id" doc:"Membership row ID"`
	ShelfID  int64 `json:"shelf_id" doc:"Shelf ID"`
	RecipeID int64 `json:"recipe_id" doc:"Recipe ID"`
}

// ShelfRecipeOutput wraps the membership response for Huma.
type ShelfRecipeOutput struct {
	Body ShelfRecipeResponse
}

// RemoveRecipeFromShelfInput contains parameters for unshelving a recipe.
type RemoveRecipeFromShelfInput struct {
	ID       int64 `path:"id" doc:"Shelf ID"`
	RecipeID int64 `path:"recipeId" doc:"Recipe ID"`
}

// === Handlers ===

func (s *Server) handleListMyShelves(ctx context.Context, _ *struct{}) (*ListShelvesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelves, err := s.services.Shelf.ListMyShelves(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShelfResponse, len(shelves))
	for i, shelf := range shelves {
		resp[i] = mapShelfResponse(shelf)
	}

	return &ListShelvesOutput{Body: ListShelvesResponse{Shelves: resp}}, nil
}

func (s *Server) handleCreateShelf(ctx context.Context, input *CreateShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.CreateShelf(ctx, userID, input.Body.Label)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleGetShelf(ctx context.Context, input *GetShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.GetShelf(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleUpdateShelf(ctx context.Context, input *UpdateShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.RenameShelf(ctx, userID, input.ID, input.Body.Label)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleDeleteShelf(ctx context.Context, input *GetShelfInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Shelf.DeleteShelf(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Shelf deleted"}}, nil
}

func (s *Server) handleListShelfRecipes(ctx context.Context, input *GetShelfInput) (*ListShelfRecipesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Shelf.ListRecipes(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = mapRecipeResponse(r)
	}

	return &ListShelfRecipesOutput{Body: ListShelfRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleAddRecipeToShelf(ctx context.Context, input *AddRecipeToShelfInput) (*ShelfRecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sr, err := s.services.Shelf.AddRecipe(ctx, userID, input.ID, input.Body.RecipeID)
	if err != nil {
		return nil, err
	}

	return &ShelfRecipeOutput{Body: mapShelfRecipeResponse(sr)}, nil
}

func (s *Server) handleRemoveRecipeFromShelf(ctx context.Context, input *RemoveRecipeFromShelfInput) (*ShelfRecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sr, err := s.services.Shelf.RemoveRecipe(ctx, userID, input.ID, input.RecipeID)
	if err != nil {
		return nil, err
	}

	return &ShelfRecipeOutput{Body: mapShelfRecipeResponse(sr)}, nil
}

// === Mappers ===

func mapShelfResponse(shelf *domain.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:        shelf.ID,
		UserID:    shelf.UserID,
		Label:     shelf.Label,
		CreatedAt: shelf.CreatedAt,
		UpdatedAt: shelf.UpdatedAt,
	}
}

func mapShelfRecipeResponse(sr *domain.ShelfRecipe) ShelfRecipeResponse {
	return ShelfRecipeResponse{
		ID:       sr.ID,
		ShelfID:  sr.ShelfID,
		RecipeID: sr.RecipeID,
	}
}
