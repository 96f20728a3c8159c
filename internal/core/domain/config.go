package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Format is a metadata file format understood by the file driver.
type Format string

const (
	// FormatYAML reads .yaml and .yml files.
	FormatYAML Format = "yaml"
	// FormatTOML reads .toml files.
	FormatTOML Format = "toml"
	// FormatJSON reads .json and .jsonc files, comments allowed.
	FormatJSON Format = "json"
)

// Extensions returns the file extensions of f, preferred first.
func (f Format) Extensions() []string {
	switch f {
	case FormatYAML:
		return []string{".yaml", ".yml"}
	case FormatTOML:
		return []string{".toml"}
	case FormatJSON:
		return []string{".json", ".jsonc"}
	default:
		return nil
	}
}

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnsupportedFormat, "parse format"), "format", s)
	}
}

// CacheBackend selects the persistent metadata cache.
type CacheBackend string

const (
	// CacheNone disables the persistent tier.
	CacheNone CacheBackend = "none"
	// CacheFile stores one file per class.
	CacheFile CacheBackend = "file"
	// CacheRedis stores entries in Redis.
	CacheRedis CacheBackend = "redis"
	// CacheSQLite stores entries in a SQLite database.
	CacheSQLite CacheBackend = "sqlite"
)

// ParseCacheBackend validates a configured backend name. Empty means file.
func ParseCacheBackend(s string) (CacheBackend, error) {
	switch b := CacheBackend(s); b {
	case "":
		return CacheFile, nil
	case CacheNone, CacheFile, CacheRedis, CacheSQLite:
		return b, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidCacheBackend, "parse cache backend"), "backend", s)
	}
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// SQLiteConfig configures the SQLite cache backend.
type SQLiteConfig struct {
	Path string
}

// CacheConfig configures the persistent metadata cache.
type CacheConfig struct {
	Backend  CacheBackend
	Dir      string
	Compress bool
	Redis    RedisConfig
	SQLite   SQLiteConfig
}

// Config is the resolved project configuration. All paths are absolute.
type Config struct {
	// Root is the directory holding the configuration file.
	Root string
	// Path is the configuration file, empty when defaults were used.
	Path string
	// CatalogPath is the class catalog.
	CatalogPath string
	// MetadataDirs are searched in order for metadata files.
	MetadataDirs []string
	// Formats are tried in order for every class.
	Formats []Format
	// Container selects the hierarchy container.
	Container ContainerKind
	// IncludeInterfaces adds interfaces to the walked hierarchy.
	IncludeInterfaces bool
	// Debug stops absent results from being persisted.
	Debug bool
	// Cache configures the persistent tier.
	Cache CacheConfig
}
