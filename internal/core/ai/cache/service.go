package cache

import (
	"context"
	"fmt"

	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Service is the Redis-backed response cache, used when cache.redis_enabled
// is set so responses survive restarts and are shared across instances.
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService connects to Redis and verifies the connection.
func NewService(cfg *config.CacheConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get returns the cached response for the prompt/media pair.
func (s *Service) Get(ctx context.Context, prompt, media string) (string, error) {
	data, err := s.client.Get(ctx, s.key(prompt, media)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheDisabled
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return data, nil
}

// Set stores a response with the configured TTL.
func (s *Service) Set(ctx context.Context, prompt, media, value string) error {
	if err := s.client.Set(ctx, s.key(prompt, media), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *Service) key(prompt, media string) string {
	return fmt.Sprintf("ai:response:%s", generateKey(prompt, media))
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
