package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"birthday-backend/internal/features/selection/models"
	"birthday-backend/internal/features/selection/repository"
)

const (
	keyPrefixSelection = "selection:"
	keySelectionLog    = "selections:log"
)

type redisRepository struct {
	client *redis.Client
}

func NewSelectionRepository(client *redis.Client) repository.SelectionRepository {
	return &redisRepository{client: client}
}

func makeSelectionKey(id string) string {
	return keyPrefixSelection + id
}

func (r *redisRepository) Create(ctx context.Context, selection *models.UserSelection) error {
	data, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeSelectionKey(selection.ID), data, 0)
	// LPush keeps the log id list newest first.
	pipe.LPush(ctx, keySelectionLog, selection.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) List(ctx context.Context) ([]*models.UserSelection, error) {
	ids, err := r.client.LRange(ctx, keySelectionLog, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	selections := make([]*models.UserSelection, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.Get(ctx, makeSelectionKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		var selection models.UserSelection
		if err := json.Unmarshal(data, &selection); err != nil {
			return nil, err
		}
		selections = append(selections, &selection)
	}

	return selections, nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, makeSelectionKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return repository.ErrSelectionNotFound
	}

	return r.client.LRem(ctx, keySelectionLog, 0, id).Err()
}
