// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/classmeta/internal/core/domain"
)

//go:generate mockgen -source=driver.go -destination=mocks/mock_driver.go -package=mocks

// Driver produces the metadata of a single class level.
type Driver interface {
	// LoadMetadataForClass returns the metadata declared for class.
	// It returns nil, nil when the class has no metadata.
	LoadMetadataForClass(ctx context.Context, class *domain.Class) (domain.Metadata, error)
}

// AdvancedDriver is a Driver that can also enumerate the classes it knows about.
type AdvancedDriver interface {
	Driver
	// AllClassNames returns the names of every class the driver has metadata for.
	AllClassNames(ctx context.Context) ([]string, error)
}
