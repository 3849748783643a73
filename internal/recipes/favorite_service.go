package recipes

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atvouzx/dapur/internal/api"
)

const (
	favoritesPath = "/api/v1/favorites"
	togglePath    = "/api/v1/favorites/toggle"
)

// ToggleInput is the body of POST /api/v1/favorites/toggle.
type ToggleInput struct {
	RecipeID       string `json:"recipe_id" validate:"notblank"`
	UserIdentifier string `json:"user_identifier" validate:"notblank"`
}

// FavoriteService wraps the favorites resource.
type FavoriteService struct {
	api      api.Requester
	validate *validator.Validate
}

// NewFavoriteService builds a FavoriteService on top of r.
func NewFavoriteService(r api.Requester) *FavoriteService {
	return &FavoriteService{api: r, validate: newValidator()}
}

// ListFavorites returns the favorites stored for userIdentifier.
func (s *FavoriteService) ListFavorites(ctx context.Context, userIdentifier string) ([]Favorite, error) {
	userIdentifier = strings.TrimSpace(userIdentifier)
	if userIdentifier == "" {
		return nil, fmt.Errorf("%w: user_identifier is required", ErrInvalidInput)
	}
	var raw any
	query := url.Values{"user_identifier": {userIdentifier}}
	if err := s.api.Get(ctx, favoritesPath, query, &raw); err != nil {
		return nil, err
	}
	return DecodeFavorites(raw), nil
}

// ToggleFavorite adds the recipe to the user's favorites, or removes it if
// it is already there.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, in ToggleInput) (ToggleResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return ToggleResult{}, invalid(err)
	}
	var raw any
	if err := s.api.Post(ctx, togglePath, in, &raw); err != nil {
		return ToggleResult{}, err
	}
	res := DecodeToggle(raw)
	if res.RecipeID == "" {
		res.RecipeID = in.RecipeID
	}
	return res, nil
}
