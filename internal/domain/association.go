package domain

// ShelfRecipe is a membership row placing a recipe on a shelf.
// The (ShelfID, RecipeID) pair is unique; inserting a duplicate is a
// conflict, not a silent no-op.
type ShelfRecipe struct {
	ID       int64 `json:"id"`
	ShelfID  int64 `json:"shelf_id"`
	RecipeID int64 `json:"recipe_id"`
}

// RecipeTag is a membership row applying a tag to a recipe.
// The pair is not unique; duplicate tagging is tolerated and removal is
// idempotent.
type RecipeTag struct {
	RecipeID int64 `json:"recipe_id"`
	TagID    int64 `json:"tag_id"`
}
