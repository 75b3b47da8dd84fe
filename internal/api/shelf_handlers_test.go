package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createShelf(t *testing.T, token, label string) ShelfResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/shelves", map[string]any{"label": label}, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, "create shelf failed: %s", resp.Body.String())

	var shelf ShelfResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &shelf))
	return shelf
}

func TestCreateShelf_DuplicateLabel(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.signIn(t, "shelver@example.com")

	shelf := ts.createShelf(t, user.AccessToken, "Weeknight")
	assert.Equal(t, user.User.ID, shelf.UserID)

	resp := ts.api.Post("/api/v1/shelves", map[string]any{"label": "Weeknight"}, bearer(user.AccessToken))
	assert.Equal(t, http.StatusConflict, resp.Code)

	// The label becomes reusable once its shelf is deleted.
	resp = ts.api.Delete("/api/v1/shelves/"+itoa(shelf.ID), bearer(user.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Post("/api/v1/shelves", map[string]any{"label": "Weeknight"}, bearer(user.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestShelfOwnership(t *testing.T) {
	ts := setupTestServer(t)
	owner := ts.signIn(t, "owner@example.com")
	intruder := ts.signIn(t, "intruder@example.com")

	shelf := ts.createShelf(t, owner.AccessToken, "Mine")

	resp := ts.api.Get("/api/v1/shelves/"+itoa(shelf.ID), bearer(intruder.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Patch("/api/v1/shelves/"+itoa(shelf.ID),
		map[string]any{"label": "Stolen"}, bearer(intruder.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Get("/api/v1/shelves/"+itoa(shelf.ID), bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestShelfMembershipLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	owner := ts.signIn(t, "owner@example.com")

	shelf := ts.createShelf(t, owner.AccessToken, "Favorites")
	recipe := ts.createRecipe(t, owner.AccessToken, map[string]any{"title": "Gumbo"})

	resp := ts.api.Post("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes",
		map[string]any{"recipe_id": recipe.ID}, bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	// Shelving the same recipe twice is a conflict.
	resp = ts.api.Post("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes",
		map[string]any{"recipe_id": recipe.ID}, bearer(owner.AccessToken))
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Get("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes", bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	var listing ListShelfRecipesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	require.Len(t, listing.Recipes, 1)
	assert.Equal(t, recipe.ID, listing.Recipes[0].ID)

	resp = ts.api.Delete("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes/"+itoa(recipe.ID), bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	// Removing a recipe that is not on the shelf is a 404.
	resp = ts.api.Delete("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes/"+itoa(recipe.ID), bearer(owner.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteRecipe_ClearsShelves(t *testing.T) {
	ts := setupTestServer(t)
	owner := ts.signIn(t, "owner@example.com")

	shelf := ts.createShelf(t, owner.AccessToken, "Favorites")
	recipe := ts.createRecipe(t, owner.AccessToken, map[string]any{"title": "Doomed"})

	resp := ts.api.Post("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes",
		map[string]any{"recipe_id": recipe.ID}, bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/recipes/"+itoa(recipe.ID), bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/shelves/"+itoa(shelf.ID)+"/recipes", bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	var listing ListShelfRecipesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	assert.Empty(t, listing.Recipes)
}
