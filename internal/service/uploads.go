package service

import (
	"fmt"
	"io"

	appErrors "github.com/binaryhub/portal-api/pkg/errors"
	"github.com/binaryhub/portal-api/pkg/storage"
)

type fileStore interface {
	SaveStream(category, filename string, r io.Reader) (string, error)
	Delete(publicPath string) error
}

// Upload is an incoming multipart file, decoupled from the HTTP layer.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// storeImage validates and persists an uploaded image, returning its
// public path. A nil upload yields an empty path without error.
func storeImage(files fileStore, category string, maxSize int64, up *Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	if !storage.IsAllowedImage(up.Filename) {
		return "", appErrors.Clone(appErrors.ErrValidation, "Only image files (jpeg, jpg, png, gif, webp) are allowed")
	}
	if maxSize > 0 && up.Size > maxSize {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("File too large. Maximum size is %d MB", maxSize/(1024*1024)))
	}
	path, err := files.SaveStream(category, storage.UniqueName(up.Filename), up.Reader)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store uploaded file")
	}
	return path, nil
}

// removeFile deletes a stored file, tolerating an empty path.
func removeFile(files fileStore, publicPath string) error {
	if publicPath == "" {
		return nil
	}
	return files.Delete(publicPath)
}
