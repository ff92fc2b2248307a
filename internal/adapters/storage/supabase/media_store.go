// Package supabase implements the media store against Supabase Storage.
package supabase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"

	"github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
)

const objectPrefix = "/storage/v1/object/"

type mediaStore struct {
	client  *storage.Client
	baseURL string
	bucket  string
}

// NewMediaStore creates a Supabase-backed media store. baseURL is the project
// URL without the /storage/v1 suffix.
func NewMediaStore(baseURL, serviceKey, bucket string) repositories.MediaStore {
	trimmed := strings.TrimRight(baseURL, "/")
	return &mediaStore{
		client:  storage.NewClient(trimmed+"/storage/v1", serviceKey, nil),
		baseURL: trimmed,
		bucket:  bucket,
	}
}

func (s *mediaStore) Upload(_ context.Context, objectPath string, contentType string, body io.Reader) (string, error) {
	options := storage.FileOptions{ContentType: &contentType}
	if _, err := s.client.UploadFile(s.bucket, objectPath, body, options); err != nil {
		return "", fmt.Errorf("supabase upload failed: %w", err)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}

// Delete parses the bucket and object path back out of a public URL and
// removes the object. URLs that do not point into Supabase storage error.
func (s *mediaStore) Delete(_ context.Context, publicURL string) error {
	idx := strings.Index(publicURL, objectPrefix)
	if idx == -1 {
		return fmt.Errorf("not a storage object URL: %s", publicURL)
	}
	rest := strings.TrimPrefix(publicURL[idx+len(objectPrefix):], "public/")

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 {
		return fmt.Errorf("cannot parse bucket and object from URL: %s", publicURL)
	}
	bucket, object := parts[0], parts[1]
	if q := strings.Index(object, "?"); q != -1 {
		object = object[:q]
	}
	if unescaped, err := url.PathUnescape(object); err == nil {
		object = unescaped
	}

	if _, err := s.client.RemoveFile(bucket, []string{object}); err != nil {
		return fmt.Errorf("supabase delete failed: %w", err)
	}
	return nil
}
