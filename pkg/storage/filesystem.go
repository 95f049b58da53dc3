package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageExts = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// LocalStorage persists uploaded files on disk under a base directory and
// addresses them by their public URL path (e.g. /uploads/mentors/<name>).
type LocalStorage struct {
	baseDir    string
	publicPath string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, publicPath string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./public/uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, publicPath: strings.TrimRight(publicPath, "/")}, nil
}

// IsAllowedImage reports whether the filename carries an accepted raster
// image extension (jpeg, jpg, png, gif, webp).
func IsAllowedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedImageExts[ext]
	return ok
}

// UniqueName derives a collision-free filename preserving the original base
// name and extension.
func UniqueName(original string) string {
	ext := filepath.Ext(original)
	base := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(original), ext), " ", "-")
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)
}

// SaveStream stores the reader contents under the given category folder and
// returns the public path of the stored file.
func (s *LocalStorage) SaveStream(category, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	target := filepath.Join(dir, filename)
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return path.Join(s.publicPath, category, filename), nil
}

// Delete removes a stored file referenced by its public path, if present.
func (s *LocalStorage) Delete(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	target := s.Resolve(publicPath)
	if target == "" {
		return fmt.Errorf("path %q is outside the uploads directory", publicPath)
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Resolve maps a public path back to its location on disk. It returns an
// empty string when the path does not belong to this storage root.
func (s *LocalStorage) Resolve(publicPath string) string {
	rel := strings.TrimPrefix(publicPath, s.publicPath)
	if rel == publicPath {
		return ""
	}
	rel = strings.TrimPrefix(rel, "/")
	cleaned := filepath.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.Join(s.baseDir, cleaned)
}

// Dir exposes the storage root (used to mount the static file route).
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// PublicPath exposes the URL prefix files are served under.
func (s *LocalStorage) PublicPath() string {
	return s.publicPath
}
