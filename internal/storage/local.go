package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yelpcamp/backend/internal/models"
)

// localStorage implements ImageStore using local filesystem
type localStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new localStorage instance serving files under baseURL
func NewLocalStorage(basePath, baseURL string) *localStorage {
	return &localStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload writes the image under a generated name
func (s *localStorage) Upload(ctx context.Context, r io.Reader, contentType, extension string) (models.Image, error) {
	filename := GenerateFileName(extension)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(filename))

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return models.Image{}, fmt.Errorf("failed to create media directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(fullPath)
		return models.Image{}, fmt.Errorf("failed to write image file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return models.Image{}, fmt.Errorf("failed to close image file: %w", err)
	}

	return models.Image{
		URL:      s.baseURL + "/" + filename,
		Filename: filename,
	}, nil
}

// Delete removes a file. Deleting a missing file succeeds.
func (s *localStorage) Delete(ctx context.Context, filename string) error {
	key, err := cleanKey(filename)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}
