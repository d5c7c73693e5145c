package cloudinary

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"birthday-backend/internal/common/config"
)

// Client wraps the Cloudinary SDK for media uploads. All site media
// (cake image, songs, gift photos) lives in one Cloudinary account under
// a single base folder.
type Client struct {
	cld        *cloudinary.Cloudinary
	baseFolder string
}

func NewClient(cfg *config.Config) (*Client, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}

	return &Client{cld: cld, baseFolder: cfg.Cloudinary.BaseFolder}, nil
}

// ResourceType maps a MIME type onto Cloudinary's resource classes:
// image/* uploads as image, audio/* and video/* share video-class
// storage, anything else is auto-detected.
func ResourceType(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "audio/"), strings.HasPrefix(mimeType, "video/"):
		return "video"
	default:
		return "auto"
	}
}

// Upload stores the file under <baseFolder>/<folder> and returns its
// secure retrieval URL.
func (c *Client) Upload(ctx context.Context, file io.Reader, folder, mimeType string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       fmt.Sprintf("%s/%s", c.baseFolder, folder),
		ResourceType: ResourceType(mimeType),
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}

// Destroy removes a previously uploaded asset by its public ID.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
