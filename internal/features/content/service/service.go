package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "birthday-backend/internal/common/errors"
	"birthday-backend/internal/features/content/models"
	"birthday-backend/internal/features/content/repository"
)

type ContentService interface {
	// Get returns the singleton page content, creating it with defaults
	// when it does not exist yet.
	Get(ctx context.Context) (*models.PageContent, error)
	// Update merges the partial document into the singleton and returns
	// the merged result. Fields omitted from patch keep their value.
	Update(ctx context.Context, patch map[string]json.RawMessage) (*models.PageContent, error)
}

type contentService struct {
	repo repository.ContentRepository
}

func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo}
}

func (s *contentService) Get(ctx context.Context) (*models.PageContent, error) {
	content, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrContentNotFound) {
		content = models.DefaultPageContent()
		content.UpdatedAt = time.Now().UnixMilli()
		if err := s.repo.Save(ctx, content); err != nil {
			return nil, apperrors.NewDatabaseError("create default page content", err)
		}
		return content, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get page content", err)
	}

	return content, nil
}

func (s *contentService) Update(ctx context.Context, patch map[string]json.RawMessage) (*models.PageContent, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	merged, err := mergeContent(current, patch)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid page content patch")
	}

	merged.UpdatedAt = time.Now().UnixMilli()
	if err := s.repo.Save(ctx, merged); err != nil {
		return nil, apperrors.NewDatabaseError("save page content", err)
	}

	return merged, nil
}

// mergeContent overlays patch fields onto the current document via its
// JSON form, so only keys present in the patch change.
func mergeContent(current *models.PageContent, patch map[string]json.RawMessage) (*models.PageContent, error) {
	data, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	for key, value := range patch {
		if key == "updatedAt" {
			continue
		}
		doc[key] = value
	}

	data, err = json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var merged models.PageContent
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}

	return &merged, nil
}
