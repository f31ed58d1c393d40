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

// CampgroundService is the interface that wraps methods for campground business logic.
type CampgroundService interface {
	// Method List retrieves the newest campgrounds as summaries.
	List(ctx context.Context) ([]models.CampgroundSummary, error)
	// Method MapData retrieves the cluster map markers of campgrounds that have a location.
	MapData(ctx context.Context) ([]models.MapPoint, error)
	// Method GetByID retrieves a campground with its images, author and reviews.
	//
	// If the campground does not exist, an error wrapping models.ErrNotFound is returned.
	GetByID(ctx context.Context, id int) (*models.Campground, error)
	// Method Create geocodes the location, uploads the images and stores the campground owned by "authorID".
	//
	// If the geocoder fails, an error wrapping models.ErrUpstream is returned and nothing is stored.
	Create(ctx context.Context, authorID int, input *models.CampgroundInput) (*models.Campground, error)
	// Method Update replaces the editable fields, appends the uploaded images and removes the requested ones.
	//
	// The author of "campground" is never changed.
	Update(ctx context.Context, campground *models.Campground, input *models.CampgroundInput) (*models.Campground, error)
	// Method Delete removes the campground together with its reviews and images.
	Delete(ctx context.Context, campground *models.Campground) error
}

// CampgroundHandler handles HTTP requests for campgrounds
type CampgroundHandler struct {
	handlers.BaseHandler
	service CampgroundService
}

// NewCampgroundHandler creates a new campground handler
func NewCampgroundHandler(svc CampgroundService, logger *zap.Logger) *CampgroundHandler {
	return &CampgroundHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all campground handler routes.
// Note: This assumes the router is already scoped to /api
func (h *CampgroundHandler) RegisterRoutes(
	r chi.Router,
	authMiddleware func(http.Handler) http.Handler,
	ownership *middleware.Ownership,
	validator *middleware.BodyValidator,
) {
	r.Get("/campgrounds", h.List)
	r.Get("/campgrounds/map-data", h.MapData)
	r.Get("/campgrounds/{id}", h.Show)

	r.With(authMiddleware, validator.ValidateCampground).Post("/campgrounds", h.Create)
	r.With(authMiddleware, ownership.IsAuthor, validator.ValidateCampground).Put("/campgrounds/{id}", h.Update)
	r.With(authMiddleware, ownership.IsAuthor).Delete("/campgrounds/{id}", h.Delete)
}

// List handles GET /campgrounds
// @Summary List campgrounds
// @Description Get the newest campgrounds with their location and geometry
// @Tags campgrounds
// @Produce json
// @Success 200 {array} models.CampgroundSummary
// @Failure 500 {object} handlers.ErrorResponse
// @Router /campgrounds [get]
func (h *CampgroundHandler) List(w http.ResponseWriter, r *http.Request) {
	campgrounds, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, campgrounds)
}

// MapData handles GET /campgrounds/map-data
// @Summary Cluster map data
// @Description Get map markers of campgrounds that have a geometry
// @Tags campgrounds
// @Produce json
// @Success 200 {array} models.MapPoint
// @Failure 500 {object} handlers.ErrorResponse
// @Router /campgrounds/map-data [get]
func (h *CampgroundHandler) MapData(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.MapData(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, points)
}

// Show handles GET /campgrounds/{id}
// @Summary Get campground
// @Description Get a campground with its images, author and reviews
// @Tags campgrounds
// @Produce json
// @Param id path int true "Campground ID"
// @Success 200 {object} models.Campground
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /campgrounds/{id} [get]
func (h *CampgroundHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r, "id")
	if err != nil {
		h.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
		return
	}

	campground, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, campground)
}

// Create handles POST /campgrounds
// @Summary Create campground
// @Description Create a campground owned by the signed in user. The location is geocoded and the images are uploaded.
// @Tags campgrounds
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param location formData string true "Location"
// @Param description formData string true "Description"
// @Param price formData number true "Price per night"
// @Param images formData file false "Images"
// @Success 201 {object} models.Campground
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 502 {object} handlers.ErrorResponse
// @Router /campgrounds [post]
func (h *CampgroundHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondServiceError(w, models.ErrUnauthorized)
		return
	}
	input, ok := middleware.CampgroundInputFromContext(r.Context())
	if !ok {
		h.RespondServiceError(w, models.NewValidationError("body", "is required"))
		return
	}

	campground, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.Logger.Info("campground created", zap.Int("campground_id", campground.ID), zap.Int("user_id", userID))
	h.RespondJSON(w, http.StatusCreated, campground)
}

// Update handles PUT /campgrounds/{id}
// @Summary Update campground
// @Description Update a campground. Only its author may do this. New images are appended, deleteImages[] are removed.
// @Tags campgrounds
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Campground ID"
// @Param title formData string true "Title"
// @Param location formData string true "Location"
// @Param description formData string true "Description"
// @Param price formData number true "Price per night"
// @Param images formData file false "Images to append"
// @Param deleteImages[] formData []string false "Filenames of images to remove"
// @Success 200 {object} models.Campground
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /campgrounds/{id} [put]
func (h *CampgroundHandler) Update(w http.ResponseWriter, r *http.Request) {
	campground, ok := middleware.CampgroundFromContext(r.Context())
	if !ok {
		h.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
		return
	}
	input, ok := middleware.CampgroundInputFromContext(r.Context())
	if !ok {
		h.RespondServiceError(w, models.NewValidationError("body", "is required"))
		return
	}

	updated, err := h.service.Update(r.Context(), campground, input)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /campgrounds/{id}
// @Summary Delete campground
// @Description Delete a campground with all of its reviews and images. Only its author may do this.
// @Tags campgrounds
// @Produce json
// @Param id path int true "Campground ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /campgrounds/{id} [delete]
func (h *CampgroundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	campground, ok := middleware.CampgroundFromContext(r.Context())
	if !ok {
		h.RespondServiceError(w, fmt.Errorf("campground %w", models.ErrNotFound))
		return
	}

	if err := h.service.Delete(r.Context(), campground); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.Logger.Info("campground deleted", zap.Int("campground_id", campground.ID))
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Campground deleted successfully"})
}
