// Package storage stores product images in a gocloud blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"vmarket/config"
	"vmarket/internal/domain/service"
	"vmarket/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Drivers for the bucket URL schemes supported in configuration.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

const keyPrefix = "products/"

// blobImageStorage implements service.ImageStorage over a gocloud bucket, so
// the same code serves a local directory in development and GCS in production.
type blobImageStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for the image storage, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and wires its lifecycle.
func New(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobImageStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload stores the image under a random key derived from the filename's
// extension and returns its public URL.
func (s *blobImageStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := keyPrefix + uuid.New().String() + strings.ToLower(path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write image")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize image write")
	}

	s.logger.Debug("stored product image", slog.String("key", key))

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the image a previous Upload returned the URL for. Unknown
// URLs and already-deleted objects are ignored.
func (s *blobImageStorage) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete image")
	}

	return nil
}

func (s *blobImageStorage) keyFromURL(url string) (string, bool) {
	key, found := strings.CutPrefix(url, s.publicBaseURL+"/")
	if !found || !strings.HasPrefix(key, keyPrefix) {
		return "", false
	}

	return key, true
}
