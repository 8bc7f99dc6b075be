// Package storage persists product images in a blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"patisserie/config"
	"patisserie/internal/domain/lifecycle"
	"patisserie/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // Registers the file:// bucket scheme.
)

// blobImageStore implements the ImageStore interface on top of a
// gocloud blob bucket. Keys are laid out as <category>/<filename>.
type blobImageStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewBlobImageStore opens the configured bucket and returns the store.
func NewBlobImageStore(params Params) (service.ImageStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobImageStore{
		bucket: bucket,
		logger: params.Logger,
	}, nil
}

// Save writes the image under the category directory and returns the
// stored relative path. A random prefix keeps repeated uploads of the
// same filename from clobbering each other.
func (s *blobImageStore) Save(ctx context.Context, category, filename string, content io.Reader) (string, error) {
	key := path.Join(sanitize(category), uuid.NewString()+"-"+sanitize(filename))

	writer, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to open image writer")
	}

	if _, err := io.Copy(writer, io.LimitReader(content, service.MaxImageSizeBytes)); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write image")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize image write")
	}

	s.logger.Debug("Image stored", slog.String("key", key))

	return key, nil
}

// Remove deletes a previously stored image. Removing a missing image
// is not an error.
func (s *blobImageStore) Remove(ctx context.Context, key string) error {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "failed to check image existence")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete image")
	}

	return nil
}

// sanitize strips any path components from user-supplied names.
func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "unnamed"
	}

	return name
}
