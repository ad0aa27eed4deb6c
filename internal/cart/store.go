package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/tiendaqr/backend/pkg/config"
	redisclient "github.com/tiendaqr/backend/pkg/redis"
)

// ErrSnapshotNotFound signals that no snapshot exists for the device.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// SnapshotStore persists one serialized cart snapshot per device.
type SnapshotStore interface {
	Load(ctx context.Context, deviceID string) ([]byte, error)
	Save(ctx context.Context, deviceID string, payload []byte) error
	Delete(ctx context.Context, deviceID string) error
}

type snapshotClient interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartSnapshotKey(deviceID string) string
}

type redisStore struct {
	client snapshotClient
	ttl    time.Duration
}

// NewRedisStore builds the production snapshot store on top of Redis.
func NewRedisStore(client *redisclient.Client, cfg config.CartConfig) (SnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.SnapshotTTL <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive")
	}
	return &redisStore{client: client, ttl: cfg.SnapshotTTL}, nil
}

func (s *redisStore) Load(ctx context.Context, deviceID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.client.CartSnapshotKey(deviceID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("loading cart snapshot: %w", err)
	}
	return []byte(raw), nil
}

func (s *redisStore) Save(ctx context.Context, deviceID string, payload []byte) error {
	if err := s.client.Set(ctx, s.client.CartSnapshotKey(deviceID), payload, s.ttl); err != nil {
		return fmt.Errorf("saving cart snapshot: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, deviceID string) error {
	if err := s.client.Del(ctx, s.client.CartSnapshotKey(deviceID)); err != nil {
		return fmt.Errorf("deleting cart snapshot: %w", err)
	}
	return nil
}
