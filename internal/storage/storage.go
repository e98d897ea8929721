package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned download URLs (admin document review).
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// PutObject uploads a single object under the given key. The portal
	// streams applicant files through the server rather than presigning
	// uploads, so size and type checks happen before storage is touched.
	PutObject(ctx context.Context, objectKey string, contentType string, body io.Reader, size int64) error

	// DeleteObject removes an object from the storage provider. Deleting a
	// non-existent key is not an error.
	DeleteObject(ctx context.Context, objectKey string) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for viewing an object, used by the admin review screens.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
