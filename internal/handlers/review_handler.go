package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yelpcamp/backend/internal/middleware"
	"github.com/yelpcamp/backend/internal/models"
	authmw "github.com/yelpcamp/backend/libs/auth/middleware"
	"github.com/yelpcamp/backend/libs/handlers"
	"go.uber.org/zap"
)

// ReviewService is the interface that wraps methods for review business logic.
type ReviewService interface {
	// Method Create attaches a review written by "authorID" to the campground.
	//
	// If the campground does not exist, an error wrapping models.ErrNotFound is returned.
	Create(ctx context.Context, campgroundID, authorID int, input *models.ReviewInput) (*models.Review, error)
	// Method ListByCampground retrieves the reviews of a campground with their authors.
	ListByCampground(ctx context.Context, campgroundID int) ([]models.Review, error)
	// Method Delete removes the review from its campground.
	Delete(ctx context.Context, review *models.Review) error
}

// ReviewHandler handles HTTP requests for campground reviews
type ReviewHandler struct {
	handlers.BaseHandler
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(svc ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all review handler routes.
// Note: This assumes the router is already scoped to /api
func (h *ReviewHandler) RegisterRoutes(
	r chi.Router,
	authMiddleware func(http.Handler) http.Handler,
	ownership *middleware.Ownership,
	validator *middleware.BodyValidator,
) {
	r.Get("/campgrounds/{id}/reviews", h.List)
	r.With(authMiddleware, validator.ValidateReview).Post("/campgrounds/{id}/reviews", h.Create)
	r.With(authMiddleware, ownership.IsReviewAuthor).Delete("/campgrounds/{id}/reviews/{reviewId}", h.Delete)
}

// List handles GET /campgrounds/{id}/reviews
// @Summary List reviews
// @Description Get the reviews of a campground with their authors
// @Tags reviews
// @Produce json
// @Param id path int true "Campground ID"
// @Success 200 {array} models.Review
// @Failure 404 {object} handlers.ErrorResponse
// @Router /campgrounds/{id}/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	campgroundID, err := middleware.PathID(r, "id")
	if err != nil {
		h.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
		return
	}

	reviews, err := h.service.ListByCampground(r.Context(), campgroundID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, reviews)
}

// Create handles POST /campgrounds/{id}/reviews
// @Summary Create review
// @Description Review a campground as the signed in user. Any author in the body is ignored.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Campground ID"
// @Param request body models.ReviewInput true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /campgrounds/{id}/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondServiceError(w, models.ErrUnauthorized)
		return
	}
	campgroundID, err := middleware.PathID(r, "id")
	if err != nil {
		h.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
		return
	}
	input, ok := middleware.ReviewInputFromContext(r.Context())
	if !ok {
		h.RespondServiceError(w, models.NewValidationError("body", "is required"))
		return
	}

	review, err := h.service.Create(r.Context(), campgroundID, userID, input)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, review)
}

// Delete handles DELETE /campgrounds/{id}/reviews/{reviewId}
// @Summary Delete review
// @Description Delete a review. Only its author may do this.
// @Tags reviews
// @Produce json
// @Param id path int true "Campground ID"
// @Param reviewId path int true "Review ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /campgrounds/{id}/reviews/{reviewId} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	review, ok := middleware.ReviewFromContext(r.Context())
	if !ok {
		h.RespondServiceError(w, fmt.Errorf("review %w", models.ErrNotFound))
		return
	}

	if err := h.service.Delete(r.Context(), review); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Review deleted successfully"})
}
