package ports

import (
	"context"

	"go.trai.ch/classmeta/internal/core/domain"
)

//go:generate mockgen -source=metadata_cache.go -destination=mocks/mock_metadata_cache.go -package=mocks

// MetadataCache is the persistent tier of the metadata factory.
type MetadataCache interface {
	// Load returns the stored entry for class.
	// It returns nil, nil on a miss, including when the stored entry is stale.
	Load(ctx context.Context, class *domain.Class) (*domain.CacheEntry, error)

	// Put stores the entry, replacing any previous entry for the same class.
	Put(ctx context.Context, entry *domain.CacheEntry) error

	// Evict removes the entry stored for the class. Evicting a missing entry is not an error.
	Evict(ctx context.Context, class domain.InternedString) error
}

// ClearableCache is a MetadataCache that can drop every entry at once.
type ClearableCache interface {
	MetadataCache
	// Clear removes all entries.
	Clear(ctx context.Context) error
}
