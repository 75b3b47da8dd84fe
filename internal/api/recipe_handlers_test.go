package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createRecipe(t *testing.T, token string, body map[string]any) RecipeResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipes", body, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, "create recipe failed: %s", resp.Body.String())

	var recipe RecipeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recipe))
	return recipe
}

func TestCreateRecipe_DefaultsToPublic(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.signIn(t, "chef@example.com")

	recipe := ts.createRecipe(t, user.AccessToken, map[string]any{
		"title":       "Coq au Vin",
		"description": "braised chicken",
	})
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, user.User.ID, recipe.AuthorID)
	assert.Equal(t, 1, recipe.VisibilityID)

	// An empty title is rejected.
	resp := ts.api.Post("/api/v1/recipes", map[string]any{"title": ""}, bearer(user.AccessToken))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetRecipe_VisibilityGating(t *testing.T) {
	ts := setupTestServer(t)
	author := ts.signIn(t, "author@example.com")
	viewer := ts.signIn(t, "viewer@example.com")

	private := ts.createRecipe(t, author.AccessToken, map[string]any{
		"title": "Secret Sauce", "visibility_id": 3,
	})
	community := ts.createRecipe(t, author.AccessToken, map[string]any{
		"title": "Members Only", "visibility_id": 2,
	})

	// Private recipes are the author's alone.
	resp := ts.api.Get("/api/v1/recipes/"+itoa(private.ID), bearer(author.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Get("/api/v1/recipes/"+itoa(private.ID), bearer(viewer.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Community recipes need a signed-in caller.
	resp = ts.api.Get("/api/v1/recipes/"+itoa(community.ID), bearer(viewer.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Get("/api/v1/recipes/" + itoa(community.ID))
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestListPublicRecipes_AnonymousWithAuthors(t *testing.T) {
	ts := setupTestServer(t)
	author := ts.signIn(t, "author@example.com")

	ts.createRecipe(t, author.AccessToken, map[string]any{"title": "Public Dish"})
	ts.createRecipe(t, author.AccessToken, map[string]any{
		"title": "Hidden Dish", "visibility_id": 3,
	})

	resp := ts.api.Get("/api/v1/recipes")
	require.Equal(t, http.StatusOK, resp.Code)

	var listing ListRecipesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	require.Len(t, listing.Recipes, 1)
	assert.Equal(t, "Public Dish", listing.Recipes[0].Title)
	require.NotNil(t, listing.Recipes[0].Author)
	assert.Equal(t, author.User.ID, listing.Recipes[0].Author.ID)

	// Title search narrows the listing.
	resp = ts.api.Get("/api/v1/recipes?q=nothing-matches")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	assert.Empty(t, listing.Recipes)
}

func TestUpdateRecipe_AuthorOnly(t *testing.T) {
	ts := setupTestServer(t)
	author := ts.signIn(t, "author@example.com")
	intruder := ts.signIn(t, "intruder@example.com")

	recipe := ts.createRecipe(t, author.AccessToken, map[string]any{"title": "Original"})

	resp := ts.api.Patch("/api/v1/recipes/"+itoa(recipe.ID),
		map[string]any{"title": "Hijacked"}, bearer(intruder.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Patch("/api/v1/recipes/"+itoa(recipe.ID),
		map[string]any{"title": "Revised", "visibility_id": 3}, bearer(author.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var updated RecipeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Revised", updated.Title)
	assert.Equal(t, 3, updated.VisibilityID)

	// An empty update set is a bad request, not a silent no-op.
	resp = ts.api.Patch("/api/v1/recipes/"+itoa(recipe.ID),
		map[string]any{}, bearer(author.AccessToken))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRecipeTagging(t *testing.T) {
	ts := setupTestServer(t)
	author := ts.signIn(t, "author@example.com")

	recipe := ts.createRecipe(t, author.AccessToken, map[string]any{"title": "Tagged"})

	resp := ts.api.Post("/api/v1/tags", map[string]any{"value": "weeknight"}, bearer(author.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))

	resp = ts.api.Post("/api/v1/recipes/"+itoa(recipe.ID)+"/tags",
		map[string]any{"tag_id": tag.ID}, bearer(author.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	// An unknown tag is a 404, not a dangling membership row.
	resp = ts.api.Post("/api/v1/recipes/"+itoa(recipe.ID)+"/tags",
		map[string]any{"tag_id": 9999}, bearer(author.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/recipes/" + itoa(recipe.ID) + "/tags")
	require.Equal(t, http.StatusOK, resp.Code)
	var tags ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tags))
	require.Len(t, tags.Tags, 1)
	assert.Equal(t, "weeknight", tags.Tags[0].Value)

	// Untagging is idempotent.
	resp = ts.api.Delete("/api/v1/recipes/"+itoa(recipe.ID)+"/tags/"+itoa(tag.ID), bearer(author.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Delete("/api/v1/recipes/"+itoa(recipe.ID)+"/tags/"+itoa(tag.ID), bearer(author.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)
}
