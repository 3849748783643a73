package recipes

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atvouzx/dapur/internal/api"
)

const reviewsPath = "/api/v1/reviews"

// ReviewInput is the body of review create and update calls. Updates do not
// require UserIdentifier.
type ReviewInput struct {
	UserIdentifier string `json:"user_identifier,omitempty" validate:"notblank"`
	Rating         int    `json:"rating" validate:"min=1,max=5"`
	Comment        string `json:"comment,omitempty" validate:"max=1000"`
}

// ReviewService wraps the review resource.
type ReviewService struct {
	api      api.Requester
	validate *validator.Validate
}

// NewReviewService builds a ReviewService on top of r.
func NewReviewService(r api.Requester) *ReviewService {
	return &ReviewService{api: r, validate: newValidator()}
}

// ListReviews returns the reviews of a recipe.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID string) ([]Review, error) {
	path, err := recipeReviewsPath(recipeID)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := s.api.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return DecodeReviews(raw), nil
}

// CreateReview posts a review for recipeID.
func (s *ReviewService) CreateReview(ctx context.Context, recipeID string, in ReviewInput) (Review, error) {
	path, err := recipeReviewsPath(recipeID)
	if err != nil {
		return Review{}, err
	}
	if err := s.validate.Struct(in); err != nil {
		return Review{}, invalid(err)
	}
	var raw any
	if err := s.api.Post(ctx, path, in, &raw); err != nil {
		return Review{}, err
	}
	review := DecodeReviewEnvelope(raw).Data
	if review.RecipeID == "" {
		review.RecipeID = strings.TrimSpace(recipeID)
	}
	return review, nil
}

// UpdateReview replaces the rating and comment of a review.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID string, in ReviewInput) (Review, error) {
	path, err := reviewPath(reviewID)
	if err != nil {
		return Review{}, err
	}
	if err := s.validate.StructExcept(in, "UserIdentifier"); err != nil {
		return Review{}, invalid(err)
	}
	var raw any
	if err := s.api.Put(ctx, path, in, &raw); err != nil {
		return Review{}, err
	}
	review := DecodeReviewEnvelope(raw).Data
	if review.ID == "" {
		review.ID = strings.TrimSpace(reviewID)
	}
	return review, nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	path, err := reviewPath(reviewID)
	if err != nil {
		return err
	}
	return s.api.Delete(ctx, path, nil)
}

func recipeReviewsPath(recipeID string) (string, error) {
	base, err := recipePath(recipeID)
	if err != nil {
		return "", err
	}
	return base + "/reviews", nil
}

func reviewPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: review id required", ErrInvalidInput)
	}
	return reviewsPath + "/" + url.PathEscape(id), nil
}
