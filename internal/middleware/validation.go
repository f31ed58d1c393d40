package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/storage"
	"github.com/yelpcamp/backend/libs/handlers"
)

// defaultMaxMemory is the part of a multipart body kept in memory, the rest goes to temp files
const defaultMaxMemory = 10 << 20

// StructValidator validates tagged request payloads
type StructValidator interface {
	Struct(payload any) error
}

// BodyValidator parses request bodies into typed payloads and validates them
type BodyValidator struct {
	handlers.BaseHandler
	validator StructValidator
	maxMemory int64
}

// NewBodyValidator creates the validation middleware set
func NewBodyValidator(base handlers.BaseHandler, validator StructValidator) *BodyValidator {
	return &BodyValidator{
		BaseHandler: base,
		validator:   validator,
		maxMemory:   defaultMaxMemory,
	}
}

// ValidateCampground parses a multipart, urlencoded or JSON campground body.
// Every violated constraint is reported with 400; a valid payload is stored in the request context.
func (v *BodyValidator) ValidateCampground(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		input, violations, err := v.parseCampground(r)
		if err != nil {
			v.RespondServiceError(w, err)
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		if err := v.check(input, violations); err != nil {
			v.RespondServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCampgroundInput(r.Context(), input)))
	})
}

// ValidateReview parses a JSON or urlencoded review body.
// Every violated constraint is reported with 400; a valid payload is stored in the request context.
func (v *BodyValidator) ValidateReview(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		input, violations, err := v.parseReview(r)
		if err != nil {
			v.RespondServiceError(w, err)
			return
		}

		if err := v.check(input, violations); err != nil {
			v.RespondServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithReviewInput(r.Context(), input)))
	})
}

// check merges parse violations with validator violations, one violation per field
func (v *BodyValidator) check(payload any, violations []models.FieldViolation) error {
	err := v.validator.Struct(payload)

	var validationErr *models.ValidationError
	if err != nil && !errors.As(err, &validationErr) {
		return err
	}

	seen := make(map[string]bool, len(violations))
	for _, violation := range violations {
		seen[violation.Field] = true
	}
	if validationErr != nil {
		for _, violation := range validationErr.Violations {
			if !seen[violation.Field] {
				seen[violation.Field] = true
				violations = append(violations, violation)
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &models.ValidationError{Violations: violations}
}

type campgroundJSON struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Price        any      `json:"price"`
	DeleteImages []string `json:"deleteImages"`
}

func (v *BodyValidator) parseCampground(r *http.Request) (*models.CampgroundInput, []models.FieldViolation, error) {
	var violations []models.FieldViolation
	input := &models.CampgroundInput{}

	switch mediaType(r) {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(v.maxMemory); err != nil {
			return nil, nil, malformedBody(err)
		}
		fillCampgroundForm(input, r.MultipartForm.Value, &violations)

		for _, fh := range r.MultipartForm.File["images"] {
			if !storage.IsImageType(fh.Header.Get("Content-Type")) {
				violations = append(violations, models.FieldViolation{
					Field:   "images",
					Message: fmt.Sprintf("%q is not a JPEG, PNG, WebP or GIF image", fh.Filename),
				})
				continue
			}
			input.Images = append(input.Images, fileUpload(fh))
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, nil, malformedBody(err)
		}
		fillCampgroundForm(input, r.PostForm, &violations)
	default:
		var body struct {
			campgroundJSON
			Campground *campgroundJSON `json:"campground"`
		}
		if err := decodeJSON(r.Body, &body); err != nil {
			return nil, nil, err
		}
		data := body.campgroundJSON
		if body.Campground != nil {
			data = *body.Campground
		}

		input.Title = strings.TrimSpace(data.Title)
		input.Location = strings.TrimSpace(data.Location)
		input.Description = strings.TrimSpace(data.Description)
		input.DeleteImages = data.DeleteImages
		input.Price = parsePrice(data.Price, &violations)
	}

	return input, violations, nil
}

func fillCampgroundForm(input *models.CampgroundInput, values url.Values, violations *[]models.FieldViolation) {
	input.Title = strings.TrimSpace(formValue(values, "campground", "title"))
	input.Location = strings.TrimSpace(formValue(values, "campground", "location"))
	input.Description = strings.TrimSpace(formValue(values, "campground", "description"))

	if raw := strings.TrimSpace(formValue(values, "campground", "price")); raw != "" {
		input.Price = parsePrice(raw, violations)
	}

	input.DeleteImages = append(input.DeleteImages, values["deleteImages[]"]...)
	input.DeleteImages = append(input.DeleteImages, values["deleteImages"]...)
}

// parsePrice accepts a JSON number or a numeric string
func parsePrice(raw any, violations *[]models.FieldViolation) *float64 {
	switch value := raw.(type) {
	case nil:
		return nil
	case float64:
		return &value
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil && !math.IsNaN(price) && !math.IsInf(price, 0) {
			return &price
		}
	}
	*violations = append(*violations, models.FieldViolation{Field: "price", Message: "must be a number"})
	return nil
}

type reviewJSON struct {
	Rating any    `json:"rating"`
	Body   string `json:"body"`
}

func (v *BodyValidator) parseReview(r *http.Request) (*models.ReviewInput, []models.FieldViolation, error) {
	var violations []models.FieldViolation
	input := &models.ReviewInput{}

	switch mediaType(r) {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(v.maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, malformedBody(err)
		}
		input.Body = strings.TrimSpace(formValue(r.PostForm, "review", "body"))
		if raw := strings.TrimSpace(formValue(r.PostForm, "review", "rating")); raw != "" {
			input.Rating = parseRating(raw, &violations)
		}
	default:
		var body struct {
			reviewJSON
			Review *reviewJSON `json:"review"`
		}
		if err := decodeJSON(r.Body, &body); err != nil {
			return nil, nil, err
		}
		data := body.reviewJSON
		if body.Review != nil {
			data = *body.Review
		}

		input.Body = strings.TrimSpace(data.Body)
		input.Rating = parseRating(data.Rating, &violations)
	}

	return input, violations, nil
}

// parseRating accepts a whole JSON number or an integer string
func parseRating(raw any, violations *[]models.FieldViolation) int {
	switch value := raw.(type) {
	case nil:
		return 0
	case float64:
		if value == math.Trunc(value) && math.Abs(value) <= math.MaxInt32 {
			return int(value)
		}
	case string:
		if rating, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return rating
		}
	}
	*violations = append(*violations, models.FieldViolation{Field: "rating", Message: "must be an integer"})
	return 0
}

// formValue reads key from a flat form or from prefix[key]
func formValue(values url.Values, prefix, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return values.Get(prefix + "[" + key + "]")
}

func fileUpload(fh *multipart.FileHeader) models.FileUpload {
	return models.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func decodeJSON(body io.Reader, dst any) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return malformedBody(err)
	}
	return nil
}

func malformedBody(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return models.NewValidationError("body", "is too large")
	}
	return models.NewValidationError("body", "is malformed")
}
