package recipes_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atvouzx/dapur/internal/api"
	"github.com/atvouzx/dapur/internal/apitest"
	"github.com/atvouzx/dapur/internal/recipes"
)

func newFixture(t *testing.T) (*apitest.Server, *api.Client) {
	t.Helper()
	srv, ts := apitest.Start(t, apitest.SeedRecipes()...)
	client, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	return srv, client
}

func TestRecipeService_ListRecipesSendsFilters(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	list, err := svc.ListRecipes(context.Background(), recipes.ListParams{
		Page:     1,
		Limit:    12,
		Category: recipes.CategoryDrink,
		Order:    recipes.OrderAsc,
		SortBy:   "created_at",
	})
	require.NoError(t, err)

	req := srv.LastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/recipes", req.Path)
	assert.Equal(t, url.Values{
		"page":     {"1"},
		"limit":    {"12"},
		"category": {"minuman"},
		"order":    {"asc"},
		"sort_by":  {"created_at"},
	}, req.Query)

	require.Len(t, list.Recipes, 2)
	assert.Equal(t, "Es Teh Manis", list.Recipes[0].Name)
	assert.Equal(t, "https://images.example.com/es-teh.jpg", list.Recipes[0].ImageURL)
	assert.Equal(t, []recipes.Ingredient{{Name: "Teh melati"}, {Name: "Gula pasir"}, {Name: "Es batu"}}, list.Recipes[0].Ingredients)
	assert.Equal(t, "Wedang Jahe", list.Recipes[1].Name)
	assert.Equal(t, 2, list.Pagination.Total)
	assert.Equal(t, 1, list.Pagination.TotalPages)
}

func TestRecipeService_ListRecipesOmitsZeroParams(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	list, err := svc.ListRecipes(context.Background(), recipes.ListParams{Search: "  soto "})
	require.NoError(t, err)

	assert.Equal(t, url.Values{"search": {"soto"}}, srv.LastRequest().Query)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, "4", list.Recipes[0].ID)
}

func TestRecipeService_ListRecipesRejectsUnknownFilter(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	_, err := svc.ListRecipes(context.Background(), recipes.ListParams{Difficulty: "ekstrem"})

	require.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Empty(t, srv.Requests())
}

func TestRecipeService_GetRecipeNormalizes(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	raw, err := svc.GetRecipe(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/recipes/3", srv.LastRequest().Path)

	env, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]any)
	assert.Equal(t, "https://images.example.com/rendang.jpg", data["image_url"])
	assert.Equal(t, []any{
		map[string]any{"id": "r1", "name": "Daging sapi", "quantity": "1 kg"},
		map[string]any{"id": "r2", "name": "Santan", "quantity": "1 liter"},
		map[string]any{"id": nil, "name": "Cabai merah", "quantity": "100 gr"},
	}, data["ingredients"])
	steps := data["steps"].([]any)
	require.Len(t, steps, 3)
	assert.Equal(t, 3, steps[2].(map[string]any)["step_number"])
	assert.Equal(t, "Masukkan daging, masak hingga kering.", steps[2].(map[string]any)["instruction"])
}

func TestRecipeService_GetRecipeDetail(t *testing.T) {
	_, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	env, err := svc.GetRecipeDetail(context.Background(), "4")
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "Soto Ayam", env.Data.Name)
	assert.Equal(t, []recipes.Ingredient{
		{Name: "Ayam", Quantity: "500 gr"},
		{Name: "Kunyit"},
		{},
	}, env.Data.Ingredients)
	assert.Equal(t, []recipes.Step{
		{Number: 1, Instruction: "Rebus ayam."},
		{Number: 2, Instruction: "Tumis bumbu kuning."},
	}, env.Data.Steps)
}

func TestRecipeService_GetRecipeUsesRecipeKeyEnvelope(t *testing.T) {
	srv, client := newFixture(t)
	srv.SetRecipeResponse("legacy", map[string]any{
		"recipe": map[string]any{"id": "legacy", "name": "Gado-gado", "image": "g.jpg", "steps": []any{"Rebus sayur"}},
	})
	svc := recipes.NewRecipeService(client)

	env, err := svc.GetRecipeDetail(context.Background(), "legacy")
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "g.jpg", env.Data.ImageURL)
	assert.Equal(t, []recipes.Step{{Number: 1, Instruction: "Rebus sayur"}}, env.Data.Steps)
}

func TestRecipeService_GetRecipeNotFound(t *testing.T) {
	_, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	_, err := svc.GetRecipe(context.Background(), "404")

	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestRecipeService_EmptyIDIsRejected(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)
	ctx := context.Background()

	_, err := svc.GetRecipe(ctx, " ")
	assert.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, ""), recipes.ErrInvalidInput)
	_, err = svc.PatchRecipe(ctx, "", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Empty(t, srv.Requests())
}

func TestRecipeService_WriteCalls(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, recipes.RecipeInput{
		Name:       "Pisang Goreng",
		Category:   recipes.CategoryFood,
		Difficulty: recipes.DifficultyEasy,
		PrepTime:   "15 menit",
	})
	require.NoError(t, err)
	req := srv.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/recipes", req.Path)
	assert.Equal(t, "Pisang Goreng", req.Body["name"])
	assert.Equal(t, "makanan", req.Body["category"])

	id := created.(map[string]any)["data"].(map[string]any)["id"].(string)
	require.NotEmpty(t, id)

	_, err = svc.UpdateRecipe(ctx, id, recipes.RecipeInput{
		Name:       "Pisang Goreng Madu",
		Category:   recipes.CategoryFood,
		Difficulty: recipes.DifficultyMedium,
	})
	require.NoError(t, err)
	req = srv.LastRequest()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/recipes/"+id, req.Path)

	patched, err := svc.PatchRecipe(ctx, id, map[string]any{"prep_time": "10 menit"})
	require.NoError(t, err)
	req = srv.LastRequest()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, map[string]any{"prep_time": "10 menit"}, req.Body)
	data := patched.(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "Pisang Goreng Madu", data["name"])
	assert.Equal(t, "10 menit", data["prep_time"])

	require.NoError(t, svc.DeleteRecipe(ctx, id))
	req = srv.LastRequest()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Nil(t, req.Body)

	_, err = svc.GetRecipe(ctx, id)
	assert.True(t, api.IsNotFound(err))
}

func TestRecipeService_CreateValidates(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewRecipeService(client)

	_, err := svc.CreateRecipe(context.Background(), recipes.RecipeInput{Name: " ", Category: "kue"})

	require.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "category must be one of")
	assert.Empty(t, srv.Requests())

	_, err = svc.PatchRecipe(context.Background(), "1", nil)
	assert.ErrorIs(t, err, recipes.ErrInvalidInput)
}

func TestFavoriteService_ToggleAndList(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewFavoriteService(client)
	ctx := context.Background()

	res, err := svc.ToggleFavorite(ctx, recipes.ToggleInput{RecipeID: "3", UserIdentifier: "user-1"})
	require.NoError(t, err)
	assert.True(t, res.Favorited)
	assert.Equal(t, "3", res.RecipeID)
	assert.NotEmpty(t, res.Message)

	req := srv.LastRequest()
	assert.Equal(t, "/api/v1/favorites/toggle", req.Path)
	assert.Equal(t, map[string]any{"recipe_id": "3", "user_identifier": "user-1"}, req.Body)

	favs, err := svc.ListFavorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, url.Values{"user_identifier": {"user-1"}}, srv.LastRequest().Query)
	require.Len(t, favs, 1)
	assert.Equal(t, "3", favs[0].RecipeID)
	assert.Equal(t, "Rendang Daging", favs[0].Recipe.Name)
	assert.Equal(t, "https://images.example.com/rendang.jpg", favs[0].Recipe.ImageURL)

	res, err = svc.ToggleFavorite(ctx, recipes.ToggleInput{RecipeID: "3", UserIdentifier: "user-1"})
	require.NoError(t, err)
	assert.False(t, res.Favorited)

	favs, err = svc.ListFavorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavoriteService_Validation(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewFavoriteService(client)
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, recipes.ToggleInput{RecipeID: "3"})
	require.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Contains(t, err.Error(), "user_identifier is required")

	_, err = svc.ListFavorites(ctx, "")
	assert.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Empty(t, srv.Requests())
}

func TestFavoriteService_BlankRecipeIDIsRejected(t *testing.T) {
	svc := recipes.NewFavoriteService(nil)

	var err error
	require.NotPanics(t, func() {
		_, err = svc.ToggleFavorite(context.Background(), recipes.ToggleInput{RecipeID: "  ", UserIdentifier: "u"})
	})
	require.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Contains(t, err.Error(), "recipe_id is required")
}

func TestReviewService_Lifecycle(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewReviewService(client)
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, "1", recipes.ReviewInput{UserIdentifier: "user-1", Rating: 5, Comment: "Mantap"})
	require.NoError(t, err)
	req := srv.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/recipes/1/reviews", req.Path)
	assert.Equal(t, map[string]any{"user_identifier": "user-1", "rating": 5.0, "comment": "Mantap"}, req.Body)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1", created.RecipeID)
	assert.Equal(t, 5, created.Rating)

	reviews, err := svc.ListReviews(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, srv.LastRequest().Method)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Mantap", reviews[0].Comment)

	updated, err := svc.UpdateReview(ctx, created.ID, recipes.ReviewInput{Rating: 3, Comment: "Lumayan"})
	require.NoError(t, err)
	req = srv.LastRequest()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/reviews/"+created.ID, req.Path)
	assert.Equal(t, map[string]any{"rating": 3.0, "comment": "Lumayan"}, req.Body)
	assert.Equal(t, 3, updated.Rating)

	detail, err := recipes.NewRecipeService(client).GetRecipeDetail(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, detail.Data.AverageRating)
	assert.Equal(t, 1, detail.Data.ReviewCount)

	require.NoError(t, svc.DeleteReview(ctx, created.ID))
	assert.Equal(t, http.MethodDelete, srv.LastRequest().Method)

	reviews, err = svc.ListReviews(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewService_Validation(t *testing.T) {
	srv, client := newFixture(t)
	svc := recipes.NewReviewService(client)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, "1", recipes.ReviewInput{Rating: 0})
	require.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Contains(t, err.Error(), "rating must be at least 1")
	assert.Contains(t, err.Error(), "user_identifier is required")

	_, err = svc.UpdateReview(ctx, "r1", recipes.ReviewInput{Rating: 6})
	require.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.Contains(t, err.Error(), "rating must be at most 5")
	assert.NotContains(t, err.Error(), "user_identifier")

	_, err = svc.ListReviews(ctx, "")
	assert.ErrorIs(t, err, recipes.ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteReview(ctx, " "), recipes.ErrInvalidInput)
	assert.Empty(t, srv.Requests())
}

func TestServices_PropagateTransportErrors(t *testing.T) {
	boom := errors.New("boom")
	stub := failingRequester{err: boom}
	ctx := context.Background()

	_, err := recipes.NewRecipeService(stub).ListRecipes(ctx, recipes.ListParams{})
	assert.Same(t, boom, err)
	_, err = recipes.NewRecipeService(stub).GetRecipe(ctx, "1")
	assert.Same(t, boom, err)
	_, err = recipes.NewFavoriteService(stub).ToggleFavorite(ctx, recipes.ToggleInput{RecipeID: "1", UserIdentifier: "u"})
	assert.Same(t, boom, err)
	_, err = recipes.NewReviewService(stub).ListReviews(ctx, "1")
	assert.Same(t, boom, err)
	assert.Same(t, boom, recipes.NewReviewService(stub).DeleteReview(ctx, "1"))
}

type failingRequester struct{ err error }

func (f failingRequester) Get(context.Context, string, url.Values, any) error { return f.err }
func (f failingRequester) Post(context.Context, string, any, any) error      { return f.err }
func (f failingRequester) Put(context.Context, string, any, any) error       { return f.err }
func (f failingRequester) Patch(context.Context, string, any, any) error     { return f.err }
func (f failingRequester) Delete(context.Context, string, any) error         { return f.err }
