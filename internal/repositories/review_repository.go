package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

const reviewColumns = `
	SELECT r.id, r.campground_id, r.rating, r.body, r.created_at, u.id, u.username
	FROM reviews r
	JOIN users u ON u.id = r.author_id
`

type reviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) *reviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a review linked to its campground and sets review.ID.
// Linking and inserting are the same row write.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (campground_id, author_id, rating, body)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, review.CampgroundID, review.Author.ID, review.Rating, review.Body)
	if err != nil {
		r.logger.Error("failed to create review", zap.Error(err), zap.Int("campground_id", review.CampgroundID))
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	review.ID = int(id)
	return nil
}

// GetByID retrieves a review with its author
func (r *reviewRepository) GetByID(ctx context.Context, id int) (*models.Review, error) {
	var review models.Review
	err := r.db.QueryRowContext(ctx, reviewColumns+` WHERE r.id = ?`, id).Scan(
		&review.ID,
		&review.CampgroundID,
		&review.Rating,
		&review.Body,
		&review.CreatedAt,
		&review.Author.ID,
		&review.Author.Username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to query review by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &review, nil
}

// ListByCampground retrieves the reviews of a campground with their authors, oldest first
func (r *reviewRepository) ListByCampground(ctx context.Context, campgroundID int) ([]models.Review, error) {
	reviews, err := queryReviews(ctx, r.db, campgroundID)
	if err != nil {
		r.logger.Error("failed to query reviews", zap.Error(err), zap.Int("campground_id", campgroundID))
		return nil, err
	}
	return reviews, nil
}

// Delete removes the review row. The campground's review list is derived from it,
// so the review leaves both in one statement.
func (r *reviewRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete review", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review %w", models.ErrNotFound)
	}

	return nil
}

// queryReviews retrieves the reviews of a campground with their authors
func queryReviews(ctx context.Context, q querier, campgroundID int) ([]models.Review, error) {
	rows, err := q.QueryContext(ctx, reviewColumns+` WHERE r.campground_id = ? ORDER BY r.id`, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.CampgroundID,
			&review.Rating,
			&review.Body,
			&review.CreatedAt,
			&review.Author.ID,
			&review.Author.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}
