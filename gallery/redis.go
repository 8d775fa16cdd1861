package gallery

import (
	"context"
	"encoding/json"
	"fmt"

	"studio/types"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisConfig configures the Redis connection and list key
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore keeps the gallery in a Redis list, one JSON entry per element
type RedisStore struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

// NewRedisStore connects to Redis and verifies connectivity
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gallery: redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisStore{
		client: client,
		key:    cfg.Key,
		logger: logger.With().Str("component", "gallery").Str("store", "redis").Logger(),
	}, nil
}

// Add implements Store
func (s *RedisStore) Add(ctx context.Context, entry types.GalleryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("gallery: encode entry: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("gallery: rpush: %w", err)
	}
	return nil
}

// List implements Store. Elements that do not decode are skipped.
func (s *RedisStore) List(ctx context.Context, kind types.MediaKind) ([]types.GalleryEntry, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("gallery: lrange: %w", err)
	}

	entries := make([]types.GalleryEntry, 0, len(raw))
	for _, item := range raw {
		var e types.GalleryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			s.logger.Warn().Err(err).Msg("skipping undecodable gallery entry")
			continue
		}
		entries = append(entries, e)
	}
	return newestFirst(entries, kind), nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
