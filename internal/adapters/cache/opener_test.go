package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/classmeta/internal/adapters/cache"
	"go.trai.ch/classmeta/internal/adapters/cache/filecache"
	"go.trai.ch/classmeta/internal/adapters/cache/rediscache"
	"go.trai.ch/classmeta/internal/adapters/cache/sqlitecache"
	"go.trai.ch/classmeta/internal/core/domain"
)

func TestOpener_Open(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name  string
		cache domain.CacheConfig
		check func(t *testing.T, c any)
	}{
		{
			name:  "none",
			cache: domain.CacheConfig{Backend: domain.CacheNone},
			check: func(t *testing.T, c any) {
				t.Helper()
				assert.Nil(t, c)
			},
		},
		{
			name:  "file",
			cache: domain.CacheConfig{Backend: domain.CacheFile, Dir: filepath.Join(dir, "files")},
			check: func(t *testing.T, c any) {
				t.Helper()
				assert.IsType(t, &filecache.Store{}, c)
			},
		},
		{
			name:  "redis",
			cache: domain.CacheConfig{Backend: domain.CacheRedis, Redis: domain.RedisConfig{Addr: mr.Addr()}},
			check: func(t *testing.T, c any) {
				t.Helper()
				assert.IsType(t, &rediscache.Store{}, c)
			},
		},
		{
			name:  "sqlite",
			cache: domain.CacheConfig{Backend: domain.CacheSQLite, SQLite: domain.SQLiteConfig{Path: filepath.Join(dir, "db", "cache.db")}},
			check: func(t *testing.T, c any) {
				t.Helper()
				assert.IsType(t, &sqlitecache.Store{}, c)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, closeFn, err := cache.NewOpener().Open(context.Background(), &domain.Config{Cache: tt.cache})
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			defer func() { require.NoError(t, closeFn()) }()

			tt.check(t, c)
		})
	}
}

func TestOpener_Open_Errors(t *testing.T) {
	_, closeFn, err := cache.NewOpener().Open(context.Background(), &domain.Config{
		Cache: domain.CacheConfig{Backend: "memcached"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidCacheBackend)
	require.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err = cache.NewOpener().Open(context.Background(), &domain.Config{
		Cache: domain.CacheConfig{Backend: domain.CacheRedis, Redis: domain.RedisConfig{Addr: addr}},
	})
	require.ErrorContains(t, err, domain.ErrCacheCreateFailed.Error())
}

func TestStatModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), domain.FilePerm))
	at := time.Unix(1234, 0)
	require.NoError(t, os.Chtimes(path, at, at))

	got, err := cache.StatModTime(path)
	require.NoError(t, err)
	assert.True(t, at.Equal(got))

	_, err = cache.StatModTime(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
