package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore - минимальный контракт S3-совместимого хранилища.
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) error

	// Download возвращает ErrObjectNotFound, если объекта нет.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}
