package recipes

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atvouzx/dapur/internal/api"
)

const recipesPath = "/api/v1/recipes"

// Filter values accepted by the list endpoint.
const (
	CategoryFood  = "makanan"
	CategoryDrink = "minuman"

	DifficultyEasy   = "mudah"
	DifficultyMedium = "sedang"
	DifficultyHard   = "sulit"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams configures GET /api/v1/recipes. Zero values are omitted from
// the query so the API applies its own defaults.
type ListParams struct {
	Page       int    `validate:"gte=0"`
	Limit      int    `validate:"gte=0"`
	Category   string `validate:"omitempty,oneof=makanan minuman"`
	Difficulty string `validate:"omitempty,oneof=mudah sedang sulit"`
	Search     string
	SortBy     string
	Order      string `validate:"omitempty,oneof=asc desc"`
}

// Values encodes p as query parameters.
func (p ListParams) Values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if v := strings.TrimSpace(p.Category); v != "" {
		values.Set("category", v)
	}
	if v := strings.TrimSpace(p.Difficulty); v != "" {
		values.Set("difficulty", v)
	}
	if v := strings.TrimSpace(p.Search); v != "" {
		values.Set("search", v)
	}
	if v := strings.TrimSpace(p.SortBy); v != "" {
		values.Set("sort_by", v)
	}
	if v := strings.TrimSpace(p.Order); v != "" {
		values.Set("order", v)
	}
	return values
}

// RecipeInput is the body of create and full-update calls.
type RecipeInput struct {
	Name        string       `json:"name" validate:"notblank"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category" validate:"oneof=makanan minuman"`
	Difficulty  string       `json:"difficulty" validate:"oneof=mudah sedang sulit"`
	PrepTime    string       `json:"prep_time,omitempty"`
	ImageURL    string       `json:"image_url,omitempty" validate:"omitempty,url"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []Step       `json:"steps,omitempty"`
}

// RecipeService wraps the recipe resource.
type RecipeService struct {
	api      api.Requester
	validate *validator.Validate
}

// NewRecipeService builds a RecipeService on top of r.
func NewRecipeService(r api.Requester) *RecipeService {
	return &RecipeService{api: r, validate: newValidator()}
}

// ListRecipes fetches one page of recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, params ListParams) (RecipeList, error) {
	if err := s.validate.Struct(params); err != nil {
		return RecipeList{}, invalid(err)
	}
	var raw any
	if err := s.api.Get(ctx, recipesPath, params.Values(), &raw); err != nil {
		return RecipeList{}, err
	}
	return DecodeRecipeList(raw), nil
}

// GetRecipe fetches a single recipe and returns the normalised
// {success, data} envelope as plain JSON values.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (any, error) {
	path, err := recipePath(id)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := s.api.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

// GetRecipeDetail is GetRecipe decoded into the typed record.
func (s *RecipeService) GetRecipeDetail(ctx context.Context, id string) (Envelope[Recipe], error) {
	raw, err := s.GetRecipe(ctx, id)
	if err != nil {
		return Envelope[Recipe]{}, err
	}
	return DecodeRecipeEnvelope(raw), nil
}

// CreateRecipe posts a new recipe and returns the API response.
func (s *RecipeService) CreateRecipe(ctx context.Context, in RecipeInput) (any, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	var out any
	if err := s.api.Post(ctx, recipesPath, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRecipe replaces a recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (any, error) {
	path, err := recipePath(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	var out any
	if err := s.api.Put(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatchRecipe sends only the given fields.
func (s *RecipeService) PatchRecipe(ctx context.Context, id string, fields map[string]any) (any, error) {
	path, err := recipePath(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	var out any
	if err := s.api.Patch(ctx, path, fields, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRecipe removes a recipe.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	path, err := recipePath(id)
	if err != nil {
		return err
	}
	return s.api.Delete(ctx, path, nil)
}

func recipePath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: recipe id required", ErrInvalidInput)
	}
	return recipesPath + "/" + url.PathEscape(id), nil
}
