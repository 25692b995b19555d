// Package service defines interfaces for external collaborators of the domain.
package service

import (
	"context"
	"io"
)

// ImageStorage abstracts the object store holding product images. The admin
// back-office uploads on product creation and deletes on hard removal.
type ImageStorage interface {
	// Upload stores the image under a key derived from filename and returns
	// its public URL.
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)

	// Delete removes the image a previous Upload returned the URL for.
	// Deleting an unknown URL is not an error.
	Delete(ctx context.Context, url string) error
}
