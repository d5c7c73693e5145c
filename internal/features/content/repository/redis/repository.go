package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"birthday-backend/internal/features/content/models"
	"birthday-backend/internal/features/content/repository"
)

const keyPageContent = "page_content"

type redisRepository struct {
	client *redis.Client
}

func NewContentRepository(client *redis.Client) repository.ContentRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Get(ctx context.Context) (*models.PageContent, error) {
	data, err := r.client.Get(ctx, keyPageContent).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	var content models.PageContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page content: %w", err)
	}

	return &content, nil
}

func (r *redisRepository) Save(ctx context.Context, content *models.PageContent) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal page content: %w", err)
	}

	return r.client.Set(ctx, keyPageContent, data, 0).Err()
}
