package storage

import (
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// GenerateFileName generates a new file name based on the file extension
// It creates a UUID-based filename with the provided extension
func GenerateFileName(extension string) string {
	newUUID := uuid.New().String()
	// Ensure extension starts with a dot if it doesn't already
	if extension != "" && extension[0] != '.' {
		return newUUID + "." + extension
	}
	return newUUID + extension
}

// imageExtensions are the accepted upload types and the extension each is stored under
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// IsImageType reports whether uploads of contentType are accepted
func IsImageType(contentType string) bool {
	_, ok := imageExtensions[baseMediaType(contentType)]
	return ok
}

// Extension maps an accepted image content type to the extension it is stored under.
// The client file name is ignored so a stored file is always served as an image.
func Extension(_ string, contentType string) string {
	return imageExtensions[baseMediaType(contentType)]
}

func baseMediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// cleanKey rejects keys that would escape the storage root
func cleanKey(filename string) (string, error) {
	if filename == "" || strings.Contains(filename, "\\") {
		return "", ErrInvalidFilename
	}
	cleaned := path.Clean(filename)
	if cleaned != filename || strings.HasPrefix(cleaned, "/") || strings.HasPrefix(cleaned, "..") {
		return "", ErrInvalidFilename
	}
	return cleaned, nil
}
