package services

import (
	"context"
	"fmt"
	"io"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

const (
	// listLimit caps the campground list endpoint
	listLimit = 50
	// mapDataLimit caps the cluster map endpoint
	mapDataLimit = 100
)

// CampgroundRepository is the interface that wraps methods for Campgrounds table data access
type CampgroundRepository interface {
	// Method Create inserts a campground together with its images and sets its ID.
	Create(ctx context.Context, campground *models.Campground) error
	// Method GetByID retrieves a campground populated with author, images and reviews.
	//
	// If campground with such ID does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Campground, error)
	// Method Exists checks if a campground with such ID exists.
	Exists(ctx context.Context, id int) (bool, error)
	// Method List retrieves up to "limit" campground summaries.
	List(ctx context.Context, limit int) ([]models.CampgroundSummary, error)
	// Method MapData retrieves up to "limit" markers of campgrounds that have a geometry.
	MapData(ctx context.Context, limit int) ([]models.MapPoint, error)
	// Method Update writes the editable fields of a campground in one transaction.
	//
	// "added" images are appended after the existing ones, images named in "removed" are dropped.
	// The author is never changed.
	Update(ctx context.Context, campground *models.Campground, added []models.Image, removed []string) error
	// Method Delete removes a campground together with its reviews and image rows.
	Delete(ctx context.Context, id int) error
}

// ImageUploader stores uploaded images
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, contentType, extension string) (models.Image, error)
}

// Geocoder resolves a location to a point; a nil point means no match
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*models.Point, error)
}

// ImageCleaner removes images from storage once nothing references them
type ImageCleaner interface {
	Schedule(ctx context.Context, filenames []string)
}

// ExtensionFunc picks the stored file extension of an upload
type ExtensionFunc func(originalName, contentType string) string

type campgroundService struct {
	repo      CampgroundRepository
	uploader  ImageUploader
	geocoder  Geocoder
	cleaner   ImageCleaner
	extension ExtensionFunc
	logger    *zap.Logger
}

// NewCampgroundService creates a new campground service
func NewCampgroundService(
	repo CampgroundRepository,
	uploader ImageUploader,
	geocoder Geocoder,
	cleaner ImageCleaner,
	extension ExtensionFunc,
	logger *zap.Logger,
) *campgroundService {
	return &campgroundService{
		repo:      repo,
		uploader:  uploader,
		geocoder:  geocoder,
		cleaner:   cleaner,
		extension: extension,
		logger:    logger,
	}
}

// List retrieves the newest campgrounds
func (s *campgroundService) List(ctx context.Context) ([]models.CampgroundSummary, error) {
	summaries, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list campgrounds: %w", err)
	}
	return summaries, nil
}

// MapData retrieves the markers of the cluster map
func (s *campgroundService) MapData(ctx context.Context) ([]models.MapPoint, error) {
	points, err := s.repo.MapData(ctx, mapDataLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get map data: %w", err)
	}
	return points, nil
}

// GetByID retrieves a populated campground
func (s *campgroundService) GetByID(ctx context.Context, id int) (*models.Campground, error) {
	return s.repo.GetByID(ctx, id)
}

// Create geocodes the location, uploads the images in submission order and stores the campground.
// Uploaded images are removed again when the campground cannot be stored.
func (s *campgroundService) Create(ctx context.Context, authorID int, input *models.CampgroundInput) (*models.Campground, error) {
	geometry, err := s.geocoder.Geocode(ctx, input.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode location: %w", err)
	}

	images, err := s.uploadAll(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	campground := &models.Campground{
		Title:       input.Title,
		Location:    input.Location,
		Description: input.Description,
		Price:       *input.Price,
		Geometry:    geometry,
		Images:      images,
		Author:      models.Author{ID: authorID},
	}

	if err := s.repo.Create(ctx, campground); err != nil {
		s.cleaner.Schedule(context.WithoutCancel(ctx), filenames(images))
		return nil, fmt.Errorf("failed to create campground: %w", err)
	}

	s.logger.Info("campground created", zap.Int("id", campground.ID), zap.Int("author_id", authorID))

	return s.repo.GetByID(ctx, campground.ID)
}

// Update merges the input into the campground. The location is geocoded again only when it changed.
// Only images that belong to the campground are removed, and they leave storage after the commit.
func (s *campgroundService) Update(ctx context.Context, campground *models.Campground, input *models.CampgroundInput) (*models.Campground, error) {
	geometry := campground.Geometry
	if input.Location != campground.Location {
		point, err := s.geocoder.Geocode(ctx, input.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to geocode location: %w", err)
		}
		geometry = point
	}

	removed := ownedImages(campground.Images, input.DeleteImages)

	added, err := s.uploadAll(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	updated := &models.Campground{
		ID:          campground.ID,
		Title:       input.Title,
		Location:    input.Location,
		Description: input.Description,
		Price:       *input.Price,
		Geometry:    geometry,
		Author:      campground.Author,
	}

	if err := s.repo.Update(ctx, updated, added, removed); err != nil {
		s.cleaner.Schedule(context.WithoutCancel(ctx), filenames(added))
		return nil, fmt.Errorf("failed to update campground: %w", err)
	}

	s.cleaner.Schedule(context.WithoutCancel(ctx), removed)

	return s.repo.GetByID(ctx, campground.ID)
}

// Delete removes the campground with all of its reviews, then its images from storage
func (s *campgroundService) Delete(ctx context.Context, campground *models.Campground) error {
	if err := s.repo.Delete(ctx, campground.ID); err != nil {
		return fmt.Errorf("failed to delete campground: %w", err)
	}

	s.cleaner.Schedule(context.WithoutCancel(ctx), filenames(campground.Images))
	s.logger.Info("campground deleted", zap.Int("id", campground.ID), zap.Int("images", len(campground.Images)))

	return nil
}

// uploadAll uploads files in order. On failure the images uploaded so far are removed.
func (s *campgroundService) uploadAll(ctx context.Context, files []models.FileUpload) ([]models.Image, error) {
	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		img, err := s.upload(ctx, file)
		if err != nil {
			s.cleaner.Schedule(context.WithoutCancel(ctx), filenames(images))
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *campgroundService) upload(ctx context.Context, file models.FileUpload) (models.Image, error) {
	r, err := file.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to open uploaded file %q: %w", file.Filename, err)
	}
	defer r.Close()

	img, err := s.uploader.Upload(ctx, r, file.ContentType, s.extension(file.Filename, file.ContentType))
	if err != nil {
		s.logger.Error("failed to upload image", zap.Error(err), zap.String("filename", file.Filename))
		return models.Image{}, fmt.Errorf("failed to upload image %q: %w", file.Filename, err)
	}
	return img, nil
}

// ownedImages returns the requested filenames that belong to the campground, without duplicates
func ownedImages(images []models.Image, requested []string) []string {
	owned := make(map[string]bool, len(images))
	for _, img := range images {
		owned[img.Filename] = true
	}

	removed := make([]string, 0, len(requested))
	for _, filename := range requested {
		if owned[filename] {
			removed = append(removed, filename)
			delete(owned, filename)
		}
	}
	return removed
}

func filenames(images []models.Image) []string {
	names := make([]string, len(images))
	for i, img := range images {
		names[i] = img.Filename
	}
	return names
}
