package service

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	apperrors "birthday-backend/internal/common/errors"
	"birthday-backend/internal/common/validation"
)

const defaultFolder = "media"

// Uploader is the media-host boundary. The Cloudinary platform client
// satisfies it in production.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder, mimeType string) (string, error)
}

type MediaService interface {
	// Upload stores the file on the media host and returns its retrieval
	// URL. An empty folder falls back to "media".
	Upload(ctx context.Context, file io.Reader, folder, mimeType string) (string, error)
}

type mediaService struct {
	uploader Uploader
}

func NewMediaService(uploader Uploader) MediaService {
	return &mediaService{uploader: uploader}
}

func (s *mediaService) Upload(ctx context.Context, file io.Reader, folder, mimeType string) (string, error) {
	if folder == "" {
		folder = defaultFolder
	}
	if err := validation.ValidateFolder(folder); err != nil {
		return "", apperrors.NewValidationError("folder", err.Error())
	}

	url, err := s.uploader.Upload(ctx, file, folder, mimeType)
	if err != nil {
		return "", apperrors.NewUploadError("media host rejected the upload", err)
	}

	log.Info().Str("folder", folder).Str("mime_type", mimeType).Str("url", url).Msg("Media uploaded")
	return url, nil
}
