package preference_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tosipeli/internal/model"
	"tosipeli/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tosipeli:last-prefs:"

type redisRepo struct {
	client *redis.Client
}

// NewRedisRepository stores one JSON value per device without expiry.
func NewRedisRepository(client *redis.Client) repository.PreferenceRepository {
	return &redisRepo{client: client}
}

func (r *redisRepo) Get(ctx context.Context, deviceID string) (*model.PreferenceSelection, error) {
	raw, err := r.client.Get(ctx, key(deviceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last preferences: %w", err)
	}

	var sel model.PreferenceSelection
	if err := json.Unmarshal(raw, &sel); err != nil {
		// unreadable value counts as no previous selection
		return nil, nil
	}
	return &sel, nil
}

func (r *redisRepo) Save(ctx context.Context, deviceID string, selection model.PreferenceSelection) error {
	data, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("marshal last preferences: %w", err)
	}

	if err := r.client.Set(ctx, key(deviceID), data, 0).Err(); err != nil {
		return fmt.Errorf("save last preferences: %w", err)
	}
	return nil
}

func key(deviceID string) string {
	return keyPrefix + deviceID
}
