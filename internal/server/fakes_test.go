package server

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/libs/auth/service"
)

// memoryDB is an in-memory stand-in for the MySQL schema shared by the fake repositories
type memoryDB struct {
	mu          sync.Mutex
	users       map[int]models.User
	campgrounds map[int]models.Campground
	reviews     map[int]models.Review
	lastID      int
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:       make(map[int]models.User),
		campgrounds: make(map[int]models.Campground),
		reviews:     make(map[int]models.Review),
	}
}

func (db *memoryDB) nextID() int {
	db.lastID++
	return db.lastID
}

func (db *memoryDB) author(id int) models.Author {
	return models.Author{ID: id, Username: db.users[id].Username}
}

func (db *memoryDB) reviewsOf(campgroundID int) []models.Review {
	reviews := make([]models.Review, 0)
	for _, r := range db.reviews {
		if r.CampgroundID == campgroundID {
			r.Author = db.author(r.Author.ID)
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews
}

type memoryUserRepository struct{ db *memoryDB }

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with the given username or email %w", models.ErrConflict)
		}
	}
	user.ID = r.db.nextID()
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %w", models.ErrNotFound)
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return &u, nil
}

func (r *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type memoryCampgroundRepository struct{ db *memoryDB }

func (r *memoryCampgroundRepository) Create(ctx context.Context, campground *models.Campground) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	campground.ID = r.db.nextID()
	campground.CreatedAt = time.Now()
	stored := *campground
	stored.Images = append([]models.Image(nil), campground.Images...)
	r.db.campgrounds[campground.ID] = stored
	return nil
}

func (r *memoryCampgroundRepository) GetByID(ctx context.Context, id int) (*models.Campground, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.campgrounds[id]
	if !ok {
		return nil, fmt.Errorf("campground %w", models.ErrNotFound)
	}
	c.Author = r.db.author(c.Author.ID)
	c.Images = append([]models.Image{}, c.Images...)
	c.Reviews = r.db.reviewsOf(id)
	return &c, nil
}

func (r *memoryCampgroundRepository) Exists(ctx context.Context, id int) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.campgrounds[id]
	return ok, nil
}

func (r *memoryCampgroundRepository) List(ctx context.Context, limit int) ([]models.CampgroundSummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	summaries := make([]models.CampgroundSummary, 0, len(r.db.campgrounds))
	for _, c := range r.db.campgrounds {
		summaries = append(summaries, models.CampgroundSummary{ID: c.ID, Title: c.Title, Location: c.Location, Geometry: c.Geometry})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID > summaries[j].ID })
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (r *memoryCampgroundRepository) MapData(ctx context.Context, limit int) ([]models.MapPoint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	points := make([]models.MapPoint, 0)
	for _, c := range r.db.campgrounds {
		if c.Geometry != nil && len(points) < limit {
			points = append(points, models.MapPoint{ID: c.ID, Lat: c.Geometry.Latitude, Lng: c.Geometry.Longitude})
		}
	}
	return points, nil
}

func (r *memoryCampgroundRepository) Update(ctx context.Context, campground *models.Campground, added []models.Image, removed []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.campgrounds[campground.ID]
	if !ok {
		return fmt.Errorf("campground %w", models.ErrNotFound)
	}

	drop := make(map[string]bool, len(removed))
	for _, filename := range removed {
		drop[filename] = true
	}
	images := make([]models.Image, 0, len(stored.Images)+len(added))
	for _, img := range stored.Images {
		if !drop[img.Filename] {
			images = append(images, img)
		}
	}

	stored.Title = campground.Title
	stored.Location = campground.Location
	stored.Description = campground.Description
	stored.Price = campground.Price
	stored.Geometry = campground.Geometry
	stored.Images = append(images, added...)
	r.db.campgrounds[campground.ID] = stored
	return nil
}

func (r *memoryCampgroundRepository) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.campgrounds[id]; !ok {
		return fmt.Errorf("campground %w", models.ErrNotFound)
	}
	for reviewID, review := range r.db.reviews {
		if review.CampgroundID == id {
			delete(r.db.reviews, reviewID)
		}
	}
	delete(r.db.campgrounds, id)
	return nil
}

type memoryReviewRepository struct{ db *memoryDB }

func (r *memoryReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	review.ID = r.db.nextID()
	review.CreatedAt = time.Now()
	r.db.reviews[review.ID] = *review
	return nil
}

func (r *memoryReviewRepository) GetByID(ctx context.Context, id int) (*models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	review, ok := r.db.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %w", models.ErrNotFound)
	}
	review.Author = r.db.author(review.Author.ID)
	return &review, nil
}

func (r *memoryReviewRepository) ListByCampground(ctx context.Context, campgroundID int) ([]models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.reviewsOf(campgroundID), nil
}

func (r *memoryReviewRepository) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reviews[id]; !ok {
		return fmt.Errorf("review %w", models.ErrNotFound)
	}
	delete(r.db.reviews, id)
	return nil
}

// memorySessionStore keeps sessions in a map
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]int
}

func (s *memorySessionStore) Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return 0, service.ErrSessionNotFound
	}
	return userID, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// memoryImageStore keeps uploaded images in a map keyed by filename
type memoryImageStore struct {
	mu      sync.Mutex
	objects map[string]string
	count   int
}

func (s *memoryImageStore) Upload(ctx context.Context, r io.Reader, contentType, extension string) (models.Image, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return models.Image{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	filename := fmt.Sprintf("YelpCamp/image-%d%s", s.count, extension)
	s.objects[filename] = string(body)
	return models.Image{URL: "https://images.test/" + filename, Filename: filename}, nil
}

func (s *memoryImageStore) Delete(ctx context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, filename)
	return nil
}

func (s *memoryImageStore) content(filename string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[filename]
	return body, ok
}

// fixedGeocoder resolves every location except those containing "nowhere"
type fixedGeocoder struct {
	point models.Point
}

func (g *fixedGeocoder) Geocode(ctx context.Context, location string) (*models.Point, error) {
	if strings.Contains(strings.ToLower(location), "nowhere") {
		return nil, nil
	}
	p := g.point
	return &p, nil
}
