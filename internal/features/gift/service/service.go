package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "birthday-backend/internal/common/errors"
	"birthday-backend/internal/common/validation"
	"birthday-backend/internal/features/gift/models"
	"birthday-backend/internal/features/gift/repository"
)

type GiftService interface {
	Create(ctx context.Context, gift *models.Gift) (*models.Gift, error)
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	List(ctx context.Context) ([]*models.Gift, error)
	// Update merges the patch into the gift identified by patch["id"].
	// A temp-prefixed id inserts a new gift instead.
	Update(ctx context.Context, patch map[string]json.RawMessage) (*models.Gift, error)
	Delete(ctx context.Context, id string) error

	// SelectionView returns the gifts shown on the gift-selection page.
	SelectionView(ctx context.Context) ([]*models.Gift, error)
	// LuckGameView returns the gifts shown on the luck-game page with the
	// synthetic win gift appended after all real gifts.
	LuckGameView(ctx context.Context) ([]*models.Gift, error)

	// RemoveFromPage clears the gift's membership on one page. When the
	// other page's flag is already false the gift would become invisible
	// everywhere, so it is deleted outright instead.
	RemoveFromPage(ctx context.Context, id string, page models.Page) error
}

type giftService struct {
	repo repository.GiftRepository
}

func NewGiftService(repo repository.GiftRepository) GiftService {
	return &giftService{repo: repo}
}

func (s *giftService) Create(ctx context.Context, gift *models.Gift) (*models.Gift, error) {
	if err := validation.ValidateTitle(gift.Title); err != nil {
		return nil, apperrors.NewValidationError("title", err.Error())
	}
	if err := validation.ValidateDescription(gift.Description); err != nil {
		return nil, apperrors.NewValidationError("description", err.Error())
	}
	for _, image := range gift.Images {
		if err := validation.ValidateImageURL(image); err != nil {
			return nil, apperrors.NewValidationError("images", err.Error())
		}
	}

	gift.ID = uuid.New().String()
	if gift.Images == nil {
		gift.Images = []string{}
	}

	if err := s.repo.Create(ctx, gift); err != nil {
		return nil, apperrors.NewDatabaseError("create gift", err)
	}

	log.Info().Str("gift_id", gift.ID).Str("title", gift.Title).Msg("Gift created")
	return gift, nil
}

func (s *giftService) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	gift, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrGiftNotFound) {
		return nil, apperrors.NewGiftNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get gift", err)
	}
	return gift, nil
}

func (s *giftService) List(ctx context.Context) ([]*models.Gift, error) {
	gifts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list gifts", err)
	}
	return gifts, nil
}

func (s *giftService) Update(ctx context.Context, patch map[string]json.RawMessage) (*models.Gift, error) {
	rawID, ok := patch["id"]
	if !ok {
		return nil, apperrors.NewValidationError("id", "Gift ID is required")
	}

	var id string
	if err := json.Unmarshal(rawID, &id); err != nil || id == "" {
		return nil, apperrors.NewValidationError("id", "Gift ID is required")
	}

	// The admin panel assigns temp ids to gifts that were never saved;
	// an update for one of those is really an insert.
	if models.HasTempID(id) {
		gift, err := giftFromPatch(patch)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid gift body")
		}
		return s.Create(ctx, gift)
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := mergeGift(current, patch)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid gift patch")
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return nil, apperrors.NewGiftNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("update gift", err)
	}

	return merged, nil
}

func (s *giftService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrGiftNotFound) {
		return apperrors.NewGiftNotFoundError(id)
	}
	if err != nil {
		return apperrors.NewDatabaseError("delete gift", err)
	}

	log.Info().Str("gift_id", id).Msg("Gift deleted")
	return nil
}

func (s *giftService) SelectionView(ctx context.Context) ([]*models.Gift, error) {
	gifts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	view := make([]*models.Gift, 0, len(gifts))
	for _, gift := range gifts {
		if gift.Enabled && gift.VisibleInSelection() {
			view = append(view, gift)
		}
	}

	return view, nil
}

func (s *giftService) LuckGameView(ctx context.Context) ([]*models.Gift, error) {
	gifts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	view := make([]*models.Gift, 0, len(gifts)+1)
	for _, gift := range gifts {
		if gift.Enabled && gift.VisibleInLuckGame() {
			view = append(view, gift)
		}
	}

	// The synthetic prize always closes the list, even when no real gift
	// is eligible.
	win := models.WinGift()
	view = append(view, &win)

	return view, nil
}

func (s *giftService) RemoveFromPage(ctx context.Context, id string, page models.Page) error {
	if page != models.PageSelection && page != models.PageLuckGame {
		return apperrors.NewValidationError("page", "must be 'selection' or 'luck'")
	}

	gift, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	other := models.PageLuckGame
	if page == models.PageLuckGame {
		other = models.PageSelection
	}

	// Hidden on the other page already: clearing this page's flag would
	// orphan the gift, so delete it entirely.
	if !gift.VisibleOn(other) {
		return s.Delete(ctx, id)
	}

	hidden := false
	if page == models.PageSelection {
		gift.ShowInSelection = &hidden
	} else {
		gift.ShowInLuckGame = &hidden
	}

	if err := s.repo.Update(ctx, gift); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return apperrors.NewGiftNotFoundError(id)
		}
		return apperrors.NewDatabaseError("update gift", err)
	}

	log.Info().Str("gift_id", id).Str("page", string(page)).Msg("Gift removed from page")
	return nil
}

// mergeGift overlays patch fields onto the current gift via its JSON
// form; the stored id always wins over whatever the patch carries.
func mergeGift(current *models.Gift, patch map[string]json.RawMessage) (*models.Gift, error) {
	data, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	for key, value := range patch {
		if key == "id" {
			continue
		}
		doc[key] = value
	}

	data, err = json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	merged := &models.Gift{}
	if err := json.Unmarshal(data, merged); err != nil {
		return nil, err
	}
	merged.ID = current.ID

	return merged, nil
}

func giftFromPatch(patch map[string]json.RawMessage) (*models.Gift, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}

	gift := &models.Gift{}
	if err := json.Unmarshal(data, gift); err != nil {
		return nil, err
	}

	return gift, nil
}
