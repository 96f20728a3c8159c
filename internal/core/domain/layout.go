package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal project state directory.
	StateDirName = ".classmeta"

	// CacheDirName is the name of the metadata cache directory.
	CacheDirName = "cache"

	// DatabaseFileName is the name of the SQLite cache database.
	DatabaseFileName = "cache.db"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "classmeta.yaml"

	// CatalogFileName is the default name of the class catalog.
	CatalogFileName = "classes.yaml"

	// MetadataDirName is the default metadata search directory.
	MetadataDirName = "metadata"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DefaultRedisPrefix namespaces cache keys in Redis.
	DefaultRedisPrefix = "classmeta:"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for classmeta state.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultCachePath returns the default path of the file cache.
// It joins .classmeta and cache.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheDirName)
}

// DefaultDatabasePath returns the default path of the SQLite cache.
// It joins .classmeta and cache.db.
func DefaultDatabasePath() string {
	return filepath.Join(StateDirName, DatabaseFileName)
}

// DefaultDebugLogPath returns the default path for the debug log.
func DefaultDebugLogPath() string {
	return filepath.Join(StateDirName, DebugLogFile)
}
