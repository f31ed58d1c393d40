package services

import (
	"context"
	"fmt"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

// ReviewRepository is the interface that wraps methods for Reviews table data access
type ReviewRepository interface {
	// Method Create inserts a review linked to its campground and sets its ID.
	Create(ctx context.Context, review *models.Review) error
	// Method GetByID retrieves a review with its author.
	//
	// If review with such ID does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Review, error)
	// Method ListByCampground retrieves the reviews of a campground.
	ListByCampground(ctx context.Context, campgroundID int) ([]models.Review, error)
	// Method Delete removes a review.
	Delete(ctx context.Context, id int) error
}

// CampgroundExistenceChecker reports whether a campground exists
type CampgroundExistenceChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type reviewService struct {
	repo        ReviewRepository
	campgrounds CampgroundExistenceChecker
	logger      *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(repo ReviewRepository, campgrounds CampgroundExistenceChecker, logger *zap.Logger) *reviewService {
	return &reviewService{
		repo:        repo,
		campgrounds: campgrounds,
		logger:      logger,
	}
}

// Create adds a review by authorID to the campground
func (s *reviewService) Create(ctx context.Context, campgroundID, authorID int, input *models.ReviewInput) (*models.Review, error) {
	if err := s.ensureCampground(ctx, campgroundID); err != nil {
		return nil, err
	}

	review := &models.Review{
		CampgroundID: campgroundID,
		Rating:       input.Rating,
		Body:         input.Body,
		Author:       models.Author{ID: authorID},
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return s.repo.GetByID(ctx, review.ID)
}

// GetByID retrieves a review
func (s *reviewService) GetByID(ctx context.Context, id int) (*models.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByCampground retrieves the reviews of an existing campground
func (s *reviewService) ListByCampground(ctx context.Context, campgroundID int) ([]models.Review, error) {
	if err := s.ensureCampground(ctx, campgroundID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByCampground(ctx, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes the review, which also takes it off the campground's list
func (s *reviewService) Delete(ctx context.Context, review *models.Review) error {
	if err := s.repo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info("review deleted", zap.Int("id", review.ID), zap.Int("campground_id", review.CampgroundID))
	return nil
}

func (s *reviewService) ensureCampground(ctx context.Context, campgroundID int) error {
	exists, err := s.campgrounds.Exists(ctx, campgroundID)
	if err != nil {
		return fmt.Errorf("failed to check campground: %w", err)
	}
	if !exists {
		return fmt.Errorf("campground %w", models.ErrNotFound)
	}
	return nil
}
