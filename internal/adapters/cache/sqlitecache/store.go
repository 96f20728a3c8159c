// Package sqlitecache implements the persistent metadata cache in a SQLite database.
package sqlitecache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/classmeta/internal/adapters/codec"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS metadata_entries (
	class      TEXT PRIMARY KEY,
	absent     INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
}

// Store implements ports.ClearableCache on a SQLite database.
type Store struct {
	conn    *sql.DB
	codec   *codec.Codec
	modTime domain.ModTimeFunc
	path    string
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string, c *codec.Codec, modTime domain.ModTimeFunc) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			_ = conn.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "pragma", pragma)
		}
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	return &Store{conn: conn, codec: c, modTime: modTime, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Load retrieves the entry for class. Stale rows are deleted and reported as a miss.
func (s *Store) Load(ctx context.Context, class *domain.Class) (*domain.CacheEntry, error) {
	var payload []byte
	err := s.conn.QueryRowContext(ctx,
		`SELECT payload FROM metadata_entries WHERE class = ?`, class.Name.String(),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "class", class.Name.String())
	}

	entry, err := s.codec.Decode(payload)
	if err != nil {
		return nil, zerr.With(err, "class", class.Name.String())
	}

	if !entry.IsFresh(s.modTime) {
		if err := s.Evict(ctx, class.Name); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return entry, nil
}

// Put inserts or replaces the row of the entry's class.
func (s *Store) Put(ctx context.Context, entry *domain.CacheEntry) error {
	payload, err := s.codec.Encode(entry)
	if err != nil {
		return err
	}

	absent := 0
	if entry.IsAbsent() {
		absent = 1
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO metadata_entries (class, absent, payload, created_at) VALUES (?, ?, ?, ?)`,
		entry.Class.String(), absent, payload, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "class", entry.Class.String())
	}
	return nil
}

// Evict deletes the row of class.
func (s *Store) Evict(ctx context.Context, class domain.InternedString) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM metadata_entries WHERE class = ?`, class.String()); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheEvictFailed.Error()), "class", class.String())
	}
	return nil
}

// Clear deletes every row.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM metadata_entries`); err != nil {
		return zerr.Wrap(err, domain.ErrFailedToCleanCache.Error())
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
