// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bookmarkbrain/internal/logger"
)

// DefaultTTL is how long an entry stays cached when no TTL is given.
const DefaultTTL = 24 * time.Hour

// Store keeps JSON encoded values in Valkey under a fixed key prefix.
// Cache failures are logged and reported as misses, never as errors.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

// NewStore creates a Store. A zero ttl uses DefaultTTL.
func NewStore(client *redis.Client, prefix string, ttl time.Duration, log *logger.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, prefix: prefix, ttl: ttl, log: log.With("cache", prefix)}
}

// TTL returns the expiry applied by Set.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get decodes the value stored under key into dst and reports a hit.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.log.Warn("cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("cache decode error", "key", key, "error", err)
		return false
	}
	s.log.Debug("cache hit", "key", key)
	return true
}

// Set stores v under key with the configured TTL.
func (s *Store) Set(ctx context.Context, key string, v any) {
	s.SetTTL(ctx, key, v, s.ttl)
}

// SetTTL stores v under key with an explicit TTL.
func (s *Store) SetTTL(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("cache encode error", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, ttl).Err(); err != nil {
		s.log.Warn("cache set error", "key", key, "error", err)
	}
}

// Delete removes a single entry.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.log.Warn("cache delete error", "key", key, "error", err)
	}
}

// Clear removes every entry under the prefix by scanning for it.
func (s *Store) Clear(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			s.log.Warn("cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.log.Warn("cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		s.log.Info("cache cleared", "deleted", deleted)
	}
	return deleted
}
