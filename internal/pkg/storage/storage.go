package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

type FileStorage interface {
	// Upload stores file under key and returns the normalised key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Download opens a stored file. The caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public address of a stored file.
	URL(key string) string
}
