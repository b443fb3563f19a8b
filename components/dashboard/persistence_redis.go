package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLayoutKeyPrefix = "dashboard:widgets:"

// RedisLayoutStore persists widget layouts as JSON documents in Redis, one key
// per user.
type RedisLayoutStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisLayoutStoreOption customizes the store.
type RedisLayoutStoreOption func(*RedisLayoutStore)

// WithLayoutKeyPrefix overrides the key prefix.
func WithLayoutKeyPrefix(prefix string) RedisLayoutStoreOption {
	return func(s *RedisLayoutStore) {
		s.prefix = prefix
	}
}

// WithLayoutTTL expires stored layouts after the given duration. Zero keeps
// them forever.
func WithLayoutTTL(ttl time.Duration) RedisLayoutStoreOption {
	return func(s *RedisLayoutStore) {
		s.ttl = ttl
	}
}

// NewRedisLayoutStore wraps a Redis client as a LayoutStore.
func NewRedisLayoutStore(client *redis.Client, opts ...RedisLayoutStoreOption) (*RedisLayoutStore, error) {
	if client == nil {
		return nil, errors.New("dashboard: redis client is required")
	}
	store := &RedisLayoutStore{client: client, prefix: defaultLayoutKeyPrefix}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// LoadWidgets fetches and decodes the layout document for a user.
func (s *RedisLayoutStore) LoadWidgets(ctx context.Context, userID string) ([]Widget, error) {
	if userID == "" {
		return nil, errMissingUserID
	}
	raw, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrLayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: read layout for %s: %w", userID, err)
	}
	var widgets []Widget
	if err := json.Unmarshal([]byte(raw), &widgets); err != nil {
		return nil, fmt.Errorf("dashboard: decode layout for %s: %w", userID, err)
	}
	return widgets, nil
}

// SaveWidgets encodes and stores the layout document.
func (s *RedisLayoutStore) SaveWidgets(ctx context.Context, userID string, widgets []Widget) error {
	if userID == "" {
		return errMissingUserID
	}
	data, err := json.Marshal(widgets)
	if err != nil {
		return fmt.Errorf("dashboard: encode layout for %s: %w", userID, err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("dashboard: write layout for %s: %w", userID, err)
	}
	return nil
}

func (s *RedisLayoutStore) key(userID string) string {
	return s.prefix + userID
}

var _ LayoutStore = (*RedisLayoutStore)(nil)
