// Package middleware holds the campground and review specific request middleware:
// ownership checks and request body validation
package middleware

import (
	"context"

	"github.com/yelpcamp/backend/internal/models"
)

type contextKey string

const (
	campgroundKey      contextKey = "campground"
	reviewKey          contextKey = "review"
	campgroundInputKey contextKey = "campgroundInput"
	reviewInputKey     contextKey = "reviewInput"
)

// WithCampground returns a copy of ctx carrying the loaded campground
func WithCampground(ctx context.Context, campground *models.Campground) context.Context {
	return context.WithValue(ctx, campgroundKey, campground)
}

// CampgroundFromContext returns the campground loaded by IsAuthor
func CampgroundFromContext(ctx context.Context) (*models.Campground, bool) {
	campground, ok := ctx.Value(campgroundKey).(*models.Campground)
	return campground, ok
}

// WithReview returns a copy of ctx carrying the loaded review
func WithReview(ctx context.Context, review *models.Review) context.Context {
	return context.WithValue(ctx, reviewKey, review)
}

// ReviewFromContext returns the review loaded by IsReviewAuthor
func ReviewFromContext(ctx context.Context) (*models.Review, bool) {
	review, ok := ctx.Value(reviewKey).(*models.Review)
	return review, ok
}

// WithCampgroundInput returns a copy of ctx carrying the validated campground payload
func WithCampgroundInput(ctx context.Context, input *models.CampgroundInput) context.Context {
	return context.WithValue(ctx, campgroundInputKey, input)
}

// CampgroundInputFromContext returns the payload validated by ValidateCampground
func CampgroundInputFromContext(ctx context.Context) (*models.CampgroundInput, bool) {
	input, ok := ctx.Value(campgroundInputKey).(*models.CampgroundInput)
	return input, ok
}

// WithReviewInput returns a copy of ctx carrying the validated review payload
func WithReviewInput(ctx context.Context, input *models.ReviewInput) context.Context {
	return context.WithValue(ctx, reviewInputKey, input)
}

// ReviewInputFromContext returns the payload validated by ValidateReview
func ReviewInputFromContext(ctx context.Context) (*models.ReviewInput, bool) {
	input, ok := ctx.Value(reviewInputKey).(*models.ReviewInput)
	return input, ok
}
