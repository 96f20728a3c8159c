package ports

import (
	"context"

	"go.trai.ch/classmeta/internal/core/domain"
)

//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks

// CatalogLoader reads a class catalog.
type CatalogLoader interface {
	// Load parses and validates the catalog at path.
	Load(path string) (ClassResolver, error)
}

// DriverBuilder creates the metadata driver described by a configuration.
type DriverBuilder interface {
	// Build returns the driver reading the configured metadata directories.
	Build(cfg *domain.Config) (AdvancedDriver, error)
}

// CacheOpener opens the persistent metadata cache selected by a configuration.
type CacheOpener interface {
	// Open returns the configured cache, or nil when caching is disabled.
	// The returned close function releases the backend and is never nil.
	Open(ctx context.Context, cfg *domain.Config) (ClearableCache, func() error, error)
}
