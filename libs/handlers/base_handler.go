package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

// genericErrorMessage is returned for every failure that is not part of the API error taxonomy
const genericErrorMessage = "Oh No, Something Went Wrong!"

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Message string                  `json:"message"`
	Errors  []models.FieldViolation `json:"errors,omitempty"`
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, ErrorResponse{Message: message})
}

// RespondServiceError maps an error returned by a service or middleware to its HTTP status
//
// NotFound -> 404, Forbidden -> 403, Unauthorized -> 401, validation and conflicts -> 400,
// upstream failures -> 502, everything else -> 500 with a generic message.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.RespondJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Errors:  validationErr.Violations,
		})
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrConflict):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUpstream):
		h.Logger.Error("upstream service failure", zap.Error(err))
		h.RespondError(w, http.StatusBadGateway, models.ErrUpstream.Error())
	default:
		h.Logger.Error("internal error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, genericErrorMessage)
	}
}
