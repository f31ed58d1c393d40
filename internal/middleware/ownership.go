package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yelpcamp/backend/internal/models"
	authmw "github.com/yelpcamp/backend/libs/auth/middleware"
	"github.com/yelpcamp/backend/libs/handlers"
)

// CampgroundFinder loads a populated campground
type CampgroundFinder interface {
	GetByID(ctx context.Context, id int) (*models.Campground, error)
}

// ReviewFinder loads a review
type ReviewFinder interface {
	GetByID(ctx context.Context, id int) (*models.Review, error)
}

// Ownership restricts routes to the author of the addressed campground or review
type Ownership struct {
	handlers.BaseHandler
	campgrounds CampgroundFinder
	reviews     ReviewFinder
}

// NewOwnership creates the ownership middleware set
func NewOwnership(base handlers.BaseHandler, campgrounds CampgroundFinder, reviews ReviewFinder) *Ownership {
	return &Ownership{
		BaseHandler: base,
		campgrounds: campgrounds,
		reviews:     reviews,
	}
}

// IsAuthor loads the campground named by the {id} path parameter and lets only its author through.
// Responds 404 when it does not exist and 403 for anyone else.
func (o *Ownership) IsAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authmw.GetUserID(r.Context())
		if !ok {
			o.RespondServiceError(w, models.ErrUnauthorized)
			return
		}

		id, err := PathID(r, "id")
		if err != nil {
			o.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
			return
		}

		campground, err := o.campgrounds.GetByID(r.Context(), id)
		if err != nil {
			o.RespondServiceError(w, err)
			return
		}

		if campground.Author.ID != userID {
			o.RespondServiceError(w, models.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCampground(r.Context(), campground)))
	})
}

// IsReviewAuthor loads the review named by {reviewId} and lets only its author through.
// A review that does not belong to the {id} campground is reported as missing.
func (o *Ownership) IsReviewAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authmw.GetUserID(r.Context())
		if !ok {
			o.RespondServiceError(w, models.ErrUnauthorized)
			return
		}

		campgroundID, err := PathID(r, "id")
		if err != nil {
			o.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
			return
		}
		reviewID, err := PathID(r, "reviewId")
		if err != nil {
			o.RespondServiceError(w, fmt.Errorf("review %w", models.ErrNotFound))
			return
		}

		review, err := o.reviews.GetByID(r.Context(), reviewID)
		if err != nil {
			o.RespondServiceError(w, err)
			return
		}
		if review.CampgroundID != campgroundID {
			o.RespondServiceError(w, fmt.Errorf("review %w", models.ErrNotFound))
			return
		}

		if review.Author.ID != userID {
			o.RespondServiceError(w, models.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithReview(r.Context(), review)))
	})
}

// PathID parses a positive integer path parameter
func PathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s: %d", name, id)
	}
	return id, nil
}
