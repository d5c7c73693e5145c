package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "birthday-backend/internal/common/errors"
	"birthday-backend/internal/common/validation"
	"birthday-backend/internal/features/selection/models"
	"birthday-backend/internal/features/selection/repository"
)

type SelectionService interface {
	// Create appends a log entry. Timestamp and user agent fall back to
	// server-side values when the client leaves them empty.
	Create(ctx context.Context, selection *models.UserSelection, userAgent string) (*models.UserSelection, error)
	List(ctx context.Context) ([]*models.UserSelection, error)
	Delete(ctx context.Context, id string) error
}

type selectionService struct {
	repo repository.SelectionRepository
}

func NewSelectionService(repo repository.SelectionRepository) SelectionService {
	return &selectionService{repo: repo}
}

func (s *selectionService) Create(ctx context.Context, selection *models.UserSelection, userAgent string) (*models.UserSelection, error) {
	if err := validation.ValidateCustomText(selection.CustomText); err != nil {
		return nil, apperrors.NewValidationError("customText", err.Error())
	}

	selection.ID = uuid.New().String()
	if selection.Timestamp == 0 {
		selection.Timestamp = time.Now().UnixMilli()
	}
	if selection.UserAgent == "" {
		selection.UserAgent = userAgent
	}
	if selection.OpenedGiftIds == nil {
		selection.OpenedGiftIds = []string{}
	}

	if err := s.repo.Create(ctx, selection); err != nil {
		return nil, apperrors.NewDatabaseError("create selection", err)
	}

	log.Info().
		Str("selection_id", selection.ID).
		Str("gift_id", selection.SelectedGiftID).
		Bool("final_outcome", selection.IsFinalOutcome()).
		Msg("Selection recorded")

	return selection, nil
}

func (s *selectionService) List(ctx context.Context) ([]*models.UserSelection, error) {
	selections, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list selections", err)
	}
	return selections, nil
}

func (s *selectionService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrSelectionNotFound) {
		return apperrors.NewSelectionNotFoundError(id)
	}
	if err != nil {
		return apperrors.NewDatabaseError("delete selection", err)
	}

	log.Info().Str("selection_id", id).Msg("Selection deleted")
	return nil
}
