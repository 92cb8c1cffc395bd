package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kart-io/eventcast/pkg/session"
)

// RedisConfig configures the Redis report store.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	// KeyPrefix namespaces report keys; defaults to "eventcast:report:".
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
	// TTL expires stored reports. Zero keeps them forever.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// DefaultRedisConfig returns a localhost configuration with a 30-day TTL.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "eventcast:report:",
		TTL:       30 * 24 * time.Hour,
	}
}

// RedisStore persists reports as JSON values in Redis, one key per
// session id.
type RedisStore struct {
	client         *redis.Client
	prefix         string
	ttl            time.Duration
	externalClient bool
}

// NewRedisStore connects to Redis per cfg and verifies the connection.
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		cfg = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	s := newRedisStoreInternal(client, cfg)
	s.externalClient = false
	return s, nil
}

// NewRedisStoreWithClient wraps an externally managed client. Close
// does not close the client in this mode.
func NewRedisStoreWithClient(client *redis.Client, cfg *RedisConfig) *RedisStore {
	if cfg == nil {
		cfg = DefaultRedisConfig()
	}
	s := newRedisStoreInternal(client, cfg)
	s.externalClient = true
	return s
}

func newRedisStoreInternal(client *redis.Client, cfg *RedisConfig) *RedisStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "eventcast:report:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL}
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, r *session.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := s.client.Set(ctx, s.key(r.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store report %s: %w", r.SessionID, err)
	}
	return nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*session.Report, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", sessionID, err)
	}
	var r session.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", sessionID, err)
	}
	return &r, nil
}

// Close releases the Redis connection when the store owns it.
func (s *RedisStore) Close() error {
	if s.externalClient {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}
