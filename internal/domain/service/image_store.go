package service

import (
	"context"
	"io"
)

// MaxImageSizeBytes caps uploaded product images at 10 MB.
const MaxImageSizeBytes int64 = 10 << 20

// ImageStore persists product images grouped by catalog category.
type ImageStore interface {
	// Save writes the image under the category directory and returns the
	// stored relative path.
	Save(ctx context.Context, category, filename string, content io.Reader) (string, error)

	// Remove deletes a previously stored image. Removing a missing image
	// is not an error.
	Remove(ctx context.Context, path string) error
}
