// Package rediscache implements the persistent metadata cache on Redis.
package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/classmeta/internal/adapters/codec"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

const pingTimeout = 5 * time.Second

// Store implements ports.ClearableCache on a Redis client.
type Store struct {
	client  *redis.Client
	codec   *codec.Codec
	modTime domain.ModTimeFunc
	prefix  string
	ttl     time.Duration
}

// Connect opens a client for cfg and verifies the connection.
func Connect(ctx context.Context, cfg domain.RedisConfig, c *codec.Codec, modTime domain.ModTimeFunc) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "addr", cfg.Addr)
	}

	return NewWithClient(client, cfg, c, modTime), nil
}

// NewWithClient creates a Store on an existing client.
func NewWithClient(client *redis.Client, cfg domain.RedisConfig, c *codec.Codec, modTime domain.ModTimeFunc) *Store {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = domain.DefaultRedisPrefix
	}
	return &Store{
		client:  client,
		codec:   c,
		modTime: modTime,
		prefix:  prefix,
		ttl:     cfg.TTL,
	}
}

// Load retrieves the entry for class. Stale entries are deleted and reported as a miss.
func (s *Store) Load(ctx context.Context, class *domain.Class) (*domain.CacheEntry, error) {
	key := s.key(class.Name)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "key", key)
	}

	entry, err := s.codec.Decode(data)
	if err != nil {
		return nil, zerr.With(err, "key", key)
	}

	if !entry.IsFresh(s.modTime) {
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			return nil, zerr.With(zerr.Wrap(delErr, domain.ErrCacheEvictFailed.Error()), "key", key)
		}
		return nil, nil
	}

	return entry, nil
}

// Put stores the entry with the configured TTL. Zero TTL keeps it forever.
func (s *Store) Put(ctx context.Context, entry *domain.CacheEntry) error {
	data, err := s.codec.Encode(entry)
	if err != nil {
		return err
	}

	key := s.key(entry.Class)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key)
	}
	return nil
}

// Evict deletes the entry of class.
func (s *Store) Evict(ctx context.Context, class domain.InternedString) error {
	key := s.key(class)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheEvictFailed.Error()), "key", key)
	}
	return nil
}

// Clear deletes every key under the prefix.
func (s *Store) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanCache.Error()), "key", iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return zerr.Wrap(err, domain.ErrFailedToCleanCache.Error())
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(class domain.InternedString) string {
	return s.prefix + class.String()
}
