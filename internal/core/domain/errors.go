// Package domain contains the core types of class metadata resolution.
package domain

import "go.trai.ch/zerr"

var (
	// ErrClassNotLoadable is returned when a requested class or one of its ancestors cannot be resolved.
	ErrClassNotLoadable = zerr.New("class not loadable")

	// ErrUnsupportedCapability is returned when class names are enumerated through a driver that cannot list them.
	ErrUnsupportedCapability = zerr.New("driver cannot enumerate class names")

	// ErrInheritanceCycle is returned when a class transitively extends itself.
	ErrInheritanceCycle = zerr.New("inheritance cycle detected")

	// ErrDuplicateLevel is returned when a hierarchy already holds metadata for a class.
	ErrDuplicateLevel = zerr.New("hierarchy already contains class")

	// ErrInvalidContainerKind is returned when the configured hierarchy container is unknown.
	ErrInvalidContainerKind = zerr.New("invalid container, expected 'plain' or 'mergeable'")

	// ErrClassNotFound is returned when a class is not declared in the catalog.
	ErrClassNotFound = zerr.New("class not found in catalog")

	// ErrDuplicateClass is returned when the catalog declares a class twice.
	ErrDuplicateClass = zerr.New("duplicate class")

	// ErrInvalidClassName is returned when a catalog entry has no usable name.
	ErrInvalidClassName = zerr.New("invalid class name")

	// ErrMissingParent is returned when a class extends a class that is not declared.
	ErrMissingParent = zerr.New("missing parent class")

	// ErrMissingInterface is returned when a class implements an interface that is not declared.
	ErrMissingInterface = zerr.New("missing interface")

	// ErrInvalidParent is returned when a class extends an interface.
	ErrInvalidParent = zerr.New("class cannot extend an interface")

	// ErrNotAnInterface is returned when a class implements something that is not an interface.
	ErrNotAnInterface = zerr.New("implemented type is not an interface")

	// ErrCatalogReadFailed is returned when the class catalog cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read class catalog")

	// ErrCatalogParseFailed is returned when the class catalog cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse class catalog")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidCacheBackend is returned when the configured cache backend is unknown.
	ErrInvalidCacheBackend = zerr.New("invalid cache backend, expected 'none', 'file', 'redis' or 'sqlite'")

	// ErrUnsupportedFormat is returned when a metadata format is unknown.
	ErrUnsupportedFormat = zerr.New("unsupported metadata format")

	// ErrMetadataReadFailed is returned when a metadata file cannot be read.
	ErrMetadataReadFailed = zerr.New("failed to read metadata file")

	// ErrMetadataParseFailed is returned when a metadata file cannot be parsed.
	ErrMetadataParseFailed = zerr.New("failed to parse metadata file")

	// ErrMetadataScanFailed is returned when the metadata directories cannot be walked.
	ErrMetadataScanFailed = zerr.New("failed to scan metadata directories")

	// ErrCacheCreateFailed is returned when the cache location cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create metadata cache")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheEvictFailed is returned when a cache entry cannot be removed.
	ErrCacheEvictFailed = zerr.New("failed to evict cache entry")

	// ErrCacheEncodeFailed is returned when a cache entry cannot be encoded.
	ErrCacheEncodeFailed = zerr.New("failed to encode cache entry")

	// ErrCacheDecodeFailed is returned when a cache entry cannot be decoded.
	ErrCacheDecodeFailed = zerr.New("failed to decode cache entry")

	// ErrFailedToCleanCache is returned when the cache cannot be removed.
	ErrFailedToCleanCache = zerr.New("failed to clean metadata cache")

	// ErrWatcherCreateFailed is returned when the file system watcher cannot be created.
	ErrWatcherCreateFailed = zerr.New("failed to create file watcher")

	// ErrWatchPathFailed is returned when a path cannot be added to the watcher.
	ErrWatchPathFailed = zerr.New("failed to watch path")

	// ErrCacheDisabled is returned when a command needs the persistent cache and it is turned off.
	ErrCacheDisabled = zerr.New("metadata cache is disabled")

	// ErrWarmFailed is returned when at least one class failed to resolve during a warm-up.
	ErrWarmFailed = zerr.New("cache warm-up failed")

	// ErrNoClassesSpecified is returned when a command needs class names and got none.
	ErrNoClassesSpecified = zerr.New("no classes specified")
)
