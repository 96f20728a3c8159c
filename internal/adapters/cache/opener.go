// Package cache opens the persistent metadata cache selected by the configuration.
package cache

import (
	"context"
	"os"
	"time"

	"go.trai.ch/classmeta/internal/adapters/cache/filecache"
	"go.trai.ch/classmeta/internal/adapters/cache/rediscache"
	"go.trai.ch/classmeta/internal/adapters/cache/sqlitecache"
	"go.trai.ch/classmeta/internal/adapters/codec"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.CacheOpener.
type Opener struct {
	modTime domain.ModTimeFunc
}

// NewOpener creates an Opener checking freshness against the OS filesystem.
func NewOpener() *Opener {
	return &Opener{modTime: StatModTime}
}

// StatModTime returns the modification time of path.
func StatModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func noClose() error { return nil }

// Open returns the backend selected by cfg.Cache.Backend.
// CacheNone yields a nil cache.
func (o *Opener) Open(ctx context.Context, cfg *domain.Config) (ports.ClearableCache, func() error, error) {
	c := codec.New(cfg.Cache.Compress)

	switch cfg.Cache.Backend {
	case domain.CacheNone:
		return nil, noClose, nil
	case domain.CacheFile, "":
		return filecache.New(cfg.Cache.Dir, c, o.modTime), noClose, nil
	case domain.CacheRedis:
		store, err := rediscache.Connect(ctx, cfg.Cache.Redis, c, o.modTime)
		if err != nil {
			return nil, noClose, err
		}
		return store, store.Close, nil
	case domain.CacheSQLite:
		store, err := sqlitecache.Open(ctx, cfg.Cache.SQLite.Path, c, o.modTime)
		if err != nil {
			return nil, noClose, err
		}
		return store, store.Close, nil
	default:
		return nil, noClose, zerr.With(
			zerr.Wrap(domain.ErrInvalidCacheBackend, "open cache"),
			"backend", string(cfg.Cache.Backend),
		)
	}
}
