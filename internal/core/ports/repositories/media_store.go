package repositories

import (
	"context"
	"io"
)

// MediaStore abstracts the object storage backing uploaded assets (cover
// images, audio files, project screenshots).
type MediaStore interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, objectPath string, contentType string, body io.Reader) (string, error)
	// Delete removes an object given its public URL. Unknown URLs error.
	Delete(ctx context.Context, publicURL string) error
}
