package repository

import (
	"context"
	"errors"

	"birthday-backend/internal/features/gift/models"
)

var ErrGiftNotFound = errors.New("gift not found")

type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	// List returns every gift sorted ascending by order.
	List(ctx context.Context) ([]*models.Gift, error)
	Update(ctx context.Context, gift *models.Gift) error
	Delete(ctx context.Context, id string) error
}
