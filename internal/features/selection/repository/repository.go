package repository

import (
	"context"
	"errors"

	"birthday-backend/internal/features/selection/models"
)

var ErrSelectionNotFound = errors.New("selection not found")

type SelectionRepository interface {
	Create(ctx context.Context, selection *models.UserSelection) error
	// List returns all entries newest first.
	List(ctx context.Context) ([]*models.UserSelection, error)
	Delete(ctx context.Context, id string) error
}
