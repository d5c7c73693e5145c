package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"birthday-backend/internal/features/gift/models"
	"birthday-backend/internal/features/gift/repository"
)

const (
	keyPrefixGift = "gift:"
	keyGiftIndex  = "gifts:all"
)

type redisRepository struct {
	client *redis.Client
}

func NewGiftRepository(client *redis.Client) repository.GiftRepository {
	return &redisRepository{client: client}
}

func makeGiftKey(id string) string {
	return keyPrefixGift + id
}

func (r *redisRepository) Create(ctx context.Context, gift *models.Gift) error {
	data, err := json.Marshal(gift)
	if err != nil {
		return fmt.Errorf("failed to marshal gift: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeGiftKey(gift.ID), data, 0)
	pipe.SAdd(ctx, keyGiftIndex, gift.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	data, err := r.client.Get(ctx, makeGiftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}

	var gift models.Gift
	if err := json.Unmarshal(data, &gift); err != nil {
		return nil, err
	}

	return &gift, nil
}

func (r *redisRepository) List(ctx context.Context) ([]*models.Gift, error) {
	ids, err := r.client.SMembers(ctx, keyGiftIndex).Result()
	if err != nil {
		return nil, err
	}

	gifts := make([]*models.Gift, 0, len(ids))
	for _, id := range ids {
		gift, err := r.GetByID(ctx, id)
		if err == repository.ErrGiftNotFound {
			// Index entry without a document; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		gifts = append(gifts, gift)
	}

	sort.SliceStable(gifts, func(i, j int) bool {
		return gifts[i].Order < gifts[j].Order
	})

	return gifts, nil
}

func (r *redisRepository) Update(ctx context.Context, gift *models.Gift) error {
	exists, err := r.client.Exists(ctx, makeGiftKey(gift.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return repository.ErrGiftNotFound
	}

	data, err := json.Marshal(gift)
	if err != nil {
		return fmt.Errorf("failed to marshal gift: %w", err)
	}

	return r.client.Set(ctx, makeGiftKey(gift.ID), data, 0).Err()
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, makeGiftKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return repository.ErrGiftNotFound
	}

	return r.client.SRem(ctx, keyGiftIndex, id).Err()
}
