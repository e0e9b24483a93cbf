package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrNotConfigured is returned when no bucket is configured.
var ErrNotConfigured = errors.New("object storage is not configured")

// FileStorage defines the object storage operations used for catalog exports.
type FileStorage interface {
	// PutObject writes body under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
