package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/cartchef/backend/internal/types"
)

// RedisSuggestionCache keeps suggestions in Redis as JSON
type RedisSuggestionCache struct {
	redis *redis.Client
}

func NewRedisSuggestionCache(client *redis.Client) *RedisSuggestionCache {
	return &RedisSuggestionCache{redis: client}
}

func (c *RedisSuggestionCache) Get(ctx context.Context, key string) (*types.RecipeSuggestion, bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get suggestion: %w", err)
	}

	var s types.RecipeSuggestion
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}
	return &s, true, nil
}

func (c *RedisSuggestionCache) Set(ctx context.Context, key string, s *types.RecipeSuggestion, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}
	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}
	return nil
}
