package repository

import (
	"context"
	"errors"

	"birthday-backend/internal/features/content/models"
)

var ErrContentNotFound = errors.New("page content not found")

type ContentRepository interface {
	// Get returns the singleton document, or ErrContentNotFound when it
	// has never been written.
	Get(ctx context.Context) (*models.PageContent, error)
	// Save overwrites the singleton document.
	Save(ctx context.Context, content *models.PageContent) error
}
