// Package filecache implements the persistent metadata cache as one file per class.
package filecache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/classmeta/internal/adapters/codec"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

const entryExt = ".cbor"

// Store implements ports.ClearableCache using a file-per-class strategy.
type Store struct {
	dir     string
	codec   *codec.Codec
	modTime domain.ModTimeFunc
}

// New creates a Store keeping entries below dir.
// modTime is used to drop entries whose resources changed.
func New(dir string, c *codec.Codec, modTime domain.ModTimeFunc) *Store {
	return &Store{dir: dir, codec: c, modTime: modTime}
}

// Dir returns the directory holding the entries.
func (s *Store) Dir() string {
	return s.dir
}

// Load retrieves the entry for class. Stale entries are removed and reported as a miss.
func (s *Store) Load(ctx context.Context, class *domain.Class) (*domain.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := s.filename(class.Name.String())
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", filename)
	}

	entry, err := s.codec.Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", filename)
	}

	// Hash collision or a renamed class.
	if entry.Class != class.Name {
		return nil, nil
	}

	if !entry.IsFresh(s.modTime) {
		if rmErr := os.Remove(filename); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(rmErr, domain.ErrCacheEvictFailed.Error()), "path", filename)
		}
		return nil, nil
	}

	return entry, nil
}

// Put stores the entry, replacing the previous file atomically.
func (s *Store) Put(ctx context.Context, entry *domain.CacheEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.codec.Encode(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.dir)
	}

	filename := s.filename(entry.Class.String())
	tmp, err := os.CreateTemp(s.dir, ".entry-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "dir", s.dir)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", filename)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", filename)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", filename)
	}

	return nil
}

// Evict removes the entry of class.
func (s *Store) Evict(ctx context.Context, class domain.InternedString) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := s.filename(class.String())
	if err := os.Remove(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheEvictFailed.Error()), "path", filename)
	}
	return nil
}

// Clear removes the cache directory.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanCache.Error()), "dir", s.dir)
	}
	return nil
}

func (s *Store) filename(class string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(class), 16)+entryExt)
}
