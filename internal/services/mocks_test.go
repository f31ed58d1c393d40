package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yelpcamp/backend/internal/models"
)

// mockCampgroundRepository is a mock implementation of CampgroundRepository
type mockCampgroundRepository struct {
	campground *models.Campground
	summaries  []models.CampgroundSummary
	points     []models.MapPoint
	exists     bool
	nextID     int

	createErr error
	getErr    error
	updateErr error
	deleteErr error
	err       error

	created   *models.Campground
	updated   *models.Campground
	added     []models.Image
	removed   []string
	deletedID int
	limit     int
}

func (m *mockCampgroundRepository) Create(ctx context.Context, campground *models.Campground) error {
	if m.createErr != nil {
		return m.createErr
	}
	campground.ID = m.nextID
	m.created = campground
	return nil
}

func (m *mockCampgroundRepository) GetByID(ctx context.Context, id int) (*models.Campground, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.campground != nil {
		return m.campground, nil
	}
	if m.created != nil && m.created.ID == id {
		return m.created, nil
	}
	if m.updated != nil && m.updated.ID == id {
		return m.updated, nil
	}
	return nil, fmt.Errorf("campground %w", models.ErrNotFound)
}

func (m *mockCampgroundRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockCampgroundRepository) List(ctx context.Context, limit int) ([]models.CampgroundSummary, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

func (m *mockCampgroundRepository) MapData(ctx context.Context, limit int) ([]models.MapPoint, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.points, nil
}

func (m *mockCampgroundRepository) Update(ctx context.Context, campground *models.Campground, added []models.Image, removed []string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = campground
	m.added = added
	m.removed = removed
	return nil
}

func (m *mockCampgroundRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

// mockUploader is a mock implementation of ImageUploader
type mockUploader struct {
	uploads  []string
	contents []string
	failAt   int // 1-based upload number that fails, 0 never fails
}

func (m *mockUploader) Upload(ctx context.Context, r io.Reader, contentType, extension string) (models.Image, error) {
	if m.failAt != 0 && len(m.uploads)+1 == m.failAt {
		return models.Image{}, errors.New("storage unavailable")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return models.Image{}, err
	}
	filename := fmt.Sprintf("YelpCamp/img-%d%s", len(m.uploads)+1, extension)
	m.uploads = append(m.uploads, filename)
	m.contents = append(m.contents, string(body))
	return models.Image{URL: "https://cdn/" + filename, Filename: filename}, nil
}

// mockGeocoder is a mock implementation of Geocoder
type mockGeocoder struct {
	point *models.Point
	err   error
	calls []string
}

func (m *mockGeocoder) Geocode(ctx context.Context, location string) (*models.Point, error) {
	m.calls = append(m.calls, location)
	if m.err != nil {
		return nil, m.err
	}
	return m.point, nil
}

// mockCleaner is a mock implementation of ImageCleaner
type mockCleaner struct {
	scheduled []string
}

func (m *mockCleaner) Schedule(ctx context.Context, filenames []string) {
	m.scheduled = append(m.scheduled, filenames...)
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user           *models.User
	usernameExists bool
	emailExists    bool
	nextID         int

	createErr error
	getErr    error
	existsErr error

	created *models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = m.nextID
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.user == nil || m.user.Username != username {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.user == nil || m.user.ID != id {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.emailExists, m.existsErr
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.usernameExists, m.existsErr
}

// mockSessionManager is a mock implementation of SessionManager
type mockSessionManager struct {
	createErr  error
	destroyErr error
	userIDs    []int
	destroyed  []string
}

func (m *mockSessionManager) Create(ctx context.Context, userID int) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.userIDs = append(m.userIDs, userID)
	return fmt.Sprintf("token-%d", userID), nil
}

func (m *mockSessionManager) Destroy(ctx context.Context, token string) error {
	if m.destroyErr != nil {
		return m.destroyErr
	}
	m.destroyed = append(m.destroyed, token)
	return nil
}

// mockReviewRepository is a mock implementation of ReviewRepository
type mockReviewRepository struct {
	reviews   []models.Review
	nextID    int
	createErr error
	err       error

	created   *models.Review
	deletedID int
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	review.ID = m.nextID
	m.created = review
	return nil
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int) (*models.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.created != nil && m.created.ID == id {
		review := *m.created
		review.Author.Username = "user-" + fmt.Sprint(review.Author.ID)
		return &review, nil
	}
	return nil, fmt.Errorf("review %w", models.ErrNotFound)
}

func (m *mockReviewRepository) ListByCampground(ctx context.Context, campgroundID int) ([]models.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reviews, nil
}

func (m *mockReviewRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

func fileUpload(name, content string) models.FileUpload {
	return models.FileUpload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func testExtension(originalName, contentType string) string {
	if i := strings.LastIndex(originalName, "."); i >= 0 {
		return originalName[i:]
	}
	return ""
}

func price(p float64) *float64 {
	return &p
}
