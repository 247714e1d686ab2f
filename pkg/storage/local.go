package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// acceptedImageTypes are the only upload content types the shop stores.
var acceptedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// IsAcceptedImage reports whether the uploaded file declares an accepted
// image content type.
func IsAcceptedImage(file *multipart.FileHeader) bool {
	return acceptedImageTypes[file.Header.Get("Content-Type")]
}

// LocalStore saves uploaded assets on the local filesystem under a generated
// unique name and deletes them by path.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the storage directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the uploaded file under a generated unique name and returns the
// stored path.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), filepath.Ext(file.Filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write asset file: %w", err)
	}
	return path, nil
}

// Delete removes a stored asset by path.
func (s *LocalStore) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", path, err)
	}
	return nil
}
