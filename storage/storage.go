package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/config"
)

// Backend stores opaque blobs under generated keys.
type Backend interface {
	// Put writes data under a new key inside directory and returns that key.
	Put(ctx context.Context, directory string, data []byte, contentType string) (string, error)
	// Delete removes the blob. Deleting a key that does not exist is not an error.
	Delete(ctx context.Context, key string) error
}

// NewKey returns "<directory>/<uuid><ext>", where ext is derived from contentType.
func NewKey(directory, contentType string) string {
	var ext string
	if mime := mimetype.Lookup(contentType); mime != nil {
		ext = mime.Extension()
	}
	return path.Join(directory, uuid.NewString()+ext)
}

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case config.StorageDriverDisk:
		return NewDisk(cfg.DiskRoot)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg)
	case config.StorageDriverMinio:
		return NewMinio(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
