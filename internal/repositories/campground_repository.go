package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type campgroundRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCampgroundRepository creates a new campground repository
func NewCampgroundRepository(db *sql.DB, logger *zap.Logger) *campgroundRepository {
	return &campgroundRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the campground and its images in one transaction and sets campground.ID
func (r *campgroundRepository) Create(ctx context.Context, campground *models.Campground) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO campgrounds (title, location, description, price, longitude, latitude, author_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	lng, lat := geometryArgs(campground.Geometry)
	result, err := tx.ExecContext(ctx, query,
		campground.Title,
		campground.Location,
		campground.Description,
		campground.Price,
		lng,
		lat,
		campground.Author.ID,
	)
	if err != nil {
		r.logger.Error("failed to insert campground", zap.Error(err))
		return fmt.Errorf("failed to insert campground: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := insertImages(ctx, tx, int(id), 0, campground.Images); err != nil {
		r.logger.Error("failed to insert campground images", zap.Error(err), zap.Int64("campground_id", id))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	campground.ID = int(id)
	return nil
}

// GetByID retrieves a campground populated with its author, ordered images and reviews with authors
func (r *campgroundRepository) GetByID(ctx context.Context, id int) (*models.Campground, error) {
	query := `
		SELECT c.id, c.title, c.location, c.description, c.price, c.longitude, c.latitude,
			c.created_at, u.id, u.username
		FROM campgrounds c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = ?
	`

	var campground models.Campground
	var lng, lat sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&campground.ID,
		&campground.Title,
		&campground.Location,
		&campground.Description,
		&campground.Price,
		&lng,
		&lat,
		&campground.CreatedAt,
		&campground.Author.ID,
		&campground.Author.Username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("campground %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to query campground by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query campground: %w", err)
	}
	campground.Geometry = pointFromColumns(lng, lat)

	if campground.Images, err = r.images(ctx, id); err != nil {
		return nil, err
	}

	if campground.Reviews, err = queryReviews(ctx, r.db, id); err != nil {
		r.logger.Error("failed to query campground reviews", zap.Error(err), zap.Int("id", id))
		return nil, err
	}

	return &campground, nil
}

// Exists checks whether a campground with the given ID exists
func (r *campgroundRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM campgrounds WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error("failed to check campground existence", zap.Error(err), zap.Int("id", id))
		return false, fmt.Errorf("failed to check campground existence: %w", err)
	}

	return exists, nil
}

// List retrieves up to limit campground summaries, newest first
func (r *campgroundRepository) List(ctx context.Context, limit int) ([]models.CampgroundSummary, error) {
	query := `
		SELECT id, title, location, longitude, latitude
		FROM campgrounds
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to query campgrounds", zap.Error(err))
		return nil, fmt.Errorf("failed to query campgrounds: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.CampgroundSummary, 0)
	for rows.Next() {
		var s models.CampgroundSummary
		var lng, lat sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.Title, &s.Location, &lng, &lat); err != nil {
			r.logger.Error("failed to scan campground", zap.Error(err))
			return nil, fmt.Errorf("failed to scan campground: %w", err)
		}
		s.Geometry = pointFromColumns(lng, lat)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return summaries, nil
}

// MapData retrieves up to limit map markers for campgrounds that have a geometry
func (r *campgroundRepository) MapData(ctx context.Context, limit int) ([]models.MapPoint, error) {
	query := `
		SELECT id, COALESCE(latitude, 0), COALESCE(longitude, 0)
		FROM campgrounds
		WHERE longitude IS NOT NULL OR latitude IS NOT NULL
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to query map data", zap.Error(err))
		return nil, fmt.Errorf("failed to query map data: %w", err)
	}
	defer rows.Close()

	points := make([]models.MapPoint, 0)
	for rows.Next() {
		var p models.MapPoint
		if err := rows.Scan(&p.ID, &p.Lat, &p.Lng); err != nil {
			r.logger.Error("failed to scan map point", zap.Error(err))
			return nil, fmt.Errorf("failed to scan map point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return points, nil
}

// Update writes the editable fields of the campground, removes the image rows with the given
// filenames and appends the added images after the existing ones, all in one transaction.
// The author column is never written.
func (r *campgroundRepository) Update(ctx context.Context, campground *models.Campground, added []models.Image, removed []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE campgrounds
		SET title = ?, location = ?, description = ?, price = ?, longitude = ?, latitude = ?
		WHERE id = ?
	`

	lng, lat := geometryArgs(campground.Geometry)
	result, err := tx.ExecContext(ctx, query,
		campground.Title,
		campground.Location,
		campground.Description,
		campground.Price,
		lng,
		lat,
		campground.ID,
	)
	if err != nil {
		r.logger.Error("failed to update campground", zap.Error(err), zap.Int("id", campground.ID))
		return fmt.Errorf("failed to update campground: %w", err)
	}
	// MySQL reports 0 affected rows when nothing changed, so existence is checked separately
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM campgrounds WHERE id = ?)`, campground.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check campground existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("campground %w", models.ErrNotFound)
		}
	}

	if len(removed) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(removed)), ", ")
		args := make([]any, 0, len(removed)+1)
		args = append(args, campground.ID)
		for _, filename := range removed {
			args = append(args, filename)
		}

		deleteQuery := fmt.Sprintf(`
			DELETE FROM campground_images
			WHERE campground_id = ? AND filename IN (%s)
		`, placeholders)
		if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
			r.logger.Error("failed to delete campground images", zap.Error(err), zap.Int("id", campground.ID))
			return fmt.Errorf("failed to delete campground images: %w", err)
		}
	}

	if len(added) > 0 {
		var next int
		positionQuery := `SELECT COALESCE(MAX(position) + 1, 0) FROM campground_images WHERE campground_id = ?`
		if err := tx.QueryRowContext(ctx, positionQuery, campground.ID).Scan(&next); err != nil {
			return fmt.Errorf("failed to query next image position: %w", err)
		}
		if err := insertImages(ctx, tx, campground.ID, next, added); err != nil {
			r.logger.Error("failed to insert campground images", zap.Error(err), zap.Int("id", campground.ID))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes the campground with its reviews and image rows in one transaction
func (r *campgroundRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE campground_id = ?`, id); err != nil {
		r.logger.Error("failed to delete campground reviews", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete campground reviews: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM campground_images WHERE campground_id = ?`, id); err != nil {
		r.logger.Error("failed to delete campground images", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete campground images: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM campgrounds WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete campground", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete campground: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("campground %w", models.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// images retrieves the images of a campground in submission order
func (r *campgroundRepository) images(ctx context.Context, campgroundID int) ([]models.Image, error) {
	query := `
		SELECT url, filename
		FROM campground_images
		WHERE campground_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, campgroundID)
	if err != nil {
		r.logger.Error("failed to query campground images", zap.Error(err), zap.Int("id", campgroundID))
		return nil, fmt.Errorf("failed to query campground images: %w", err)
	}
	defer rows.Close()

	images := make([]models.Image, 0)
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.URL, &img.Filename); err != nil {
			return nil, fmt.Errorf("failed to scan campground image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

// insertImages inserts images with consecutive positions starting at first
func insertImages(ctx context.Context, tx *sql.Tx, campgroundID, first int, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}

	placeholders := make([]string, len(images))
	args := make([]any, 0, len(images)*4)
	for i, img := range images {
		placeholders[i] = "(?, ?, ?, ?)"
		args = append(args, campgroundID, first+i, img.URL, img.Filename)
	}

	query := fmt.Sprintf(`
		INSERT INTO campground_images (campground_id, position, url, filename)
		VALUES %s
	`, strings.Join(placeholders, ", "))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert campground images: %w", err)
	}

	return nil
}

func geometryArgs(p *models.Point) (any, any) {
	if p == nil {
		return nil, nil
	}
	return p.Longitude, p.Latitude
}

// pointFromColumns builds a point from nullable columns; a missing coordinate defaults to 0
func pointFromColumns(lng, lat sql.NullFloat64) *models.Point {
	if !lng.Valid && !lat.Valid {
		return nil
	}
	return &models.Point{Longitude: lng.Float64, Latitude: lat.Float64}
}
