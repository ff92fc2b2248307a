package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
)

// maxUploadBytes caps a single media upload at 20 MiB.
const maxUploadBytes = 20 << 20

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".wav": {}, ".ogg": {}, ".m4a": {}, ".aac": {}, ".flac": {},
}

type mediaService struct {
	store portsrepo.MediaStore
}

// NewMediaService creates the upload service for cover images, project
// screenshots and journal audio.
func NewMediaService(store portsrepo.MediaStore) portssvc.MediaSvcFacade {
	return &mediaService{store: store}
}

func (s *mediaService) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := checkSize(data); err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: expected an image content type, got %q", apperrors.ErrValidation, contentType)
	}
	objectPath := fmt.Sprintf("images/%s%s", uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.store.Upload(ctx, objectPath, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

func (s *mediaService) UploadAudio(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := checkSize(data); err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := audioExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: unsupported audio file extension %q", apperrors.ErrValidation, ext)
	}
	objectPath := fmt.Sprintf("audio/%s%s", uuid.NewString(), ext)
	url, err := s.store.Upload(ctx, objectPath, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	return url, nil
}

func (s *mediaService) Delete(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return fmt.Errorf("%w: url is required", apperrors.ErrValidation)
	}
	if err := s.store.Delete(ctx, publicURL); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

func checkSize(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty upload", apperrors.ErrValidation)
	}
	if len(data) > maxUploadBytes {
		return fmt.Errorf("%w: upload exceeds %d bytes", apperrors.ErrValidation, maxUploadBytes)
	}
	return nil
}
