package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"forgeauth/internal/domain"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "forge:sessions:"

// expiredGrace keeps expired records readable for a while so callers can
// still see that a session existed and re-negotiate.
const expiredGrace = 24 * time.Hour

// RedisConfig for RedisSessionStore.
type RedisConfig struct {
	// Addr like "localhost:6379".
	Addr string
	// KeyPrefix for all keys.
	KeyPrefix string
}

// RedisSessionStore shares session records through Redis. SET replaces the
// whole value, so the last writer for an identity wins.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisSessionStore connects and pings Redis.
func NewRedisSessionStore(ctx context.Context, cfg RedisConfig) (*RedisSessionStore, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	cl := redis.NewClient(&redis.Options{Addr: addr})
	if err := cl.Ping(ctx).Err(); err != nil {
		_ = cl.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisSessionStoreFromClient(cl, cfg.KeyPrefix), nil
}

// NewRedisSessionStoreFromClient wraps an existing client.
func NewRedisSessionStoreFromClient(cl *redis.Client, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSessionStore{client: cl, prefix: prefix, now: time.Now}
}

// Close closes the Redis client.
func (s *RedisSessionStore) Close() error { return s.client.Close() }

func (s *RedisSessionStore) key(id domain.PublicIdentity) string { return s.prefix + id.Base58() }

// Put stores rec with a Redis TTL of its remaining lifetime plus a grace
// period.
func (s *RedisSessionStore) Put(ctx context.Context, rec domain.SessionRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := rec.ExpiresAt.Sub(s.now()) + expiredGrace
	if ttl <= 0 {
		ttl = expiredGrace
	}
	if err := s.client.Set(ctx, s.key(rec.Identity), b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get returns the record for identity.
func (s *RedisSessionStore) Get(ctx context.Context, identity domain.PublicIdentity) (domain.SessionRecord, error) {
	b, err := s.client.Get(ctx, s.key(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SessionRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("redis get: %w", err)
	}
	var rec domain.SessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session: %w", err)
	}
	return rec, nil
}

// Delete removes the record for identity.
func (s *RedisSessionStore) Delete(ctx context.Context, identity domain.PublicIdentity) error {
	if err := s.client.Del(ctx, s.key(identity)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Compile-time assertion that RedisSessionStore implements domain.SessionStore.
var _ domain.SessionStore = (*RedisSessionStore)(nil)
