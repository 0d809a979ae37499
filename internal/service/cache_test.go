package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cartchef/backend/internal/service"
	"github.com/pageza/cartchef/backend/internal/types"
)

func TestRedisSuggestionCache(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping Redis test")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port})
	defer client.Close()

	ctx := context.Background()
	cache := service.NewRedisSuggestionCache(client)
	key := service.SuggestionKey("cache test " + time.Now().Format(time.RFC3339Nano))
	t.Cleanup(func() { client.Del(context.Background(), key) })

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	want := &types.RecipeSuggestion{
		Product:             "Cache Test",
		Dish:                "Khichdi",
		RequiredIngredients: []string{"rice", "moong dal"},
		Text:                "Khichdi",
	}
	require.NoError(t, cache.Set(ctx, key, want, time.Minute))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
