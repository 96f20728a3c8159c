package driver

import (
	"context"
	"sync"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
)

// Lazy defers building a driver until it is first used.
// A build error is returned by every call.
type Lazy struct {
	get func() (ports.AdvancedDriver, error)
}

// NewLazy creates a Lazy driver calling build at most once.
func NewLazy(build func() (ports.AdvancedDriver, error)) *Lazy {
	return &Lazy{get: sync.OnceValues(build)}
}

// LoadMetadataForClass builds the driver if needed and delegates to it.
func (l *Lazy) LoadMetadataForClass(ctx context.Context, class *domain.Class) (domain.Metadata, error) {
	d, err := l.get()
	if err != nil {
		return nil, err
	}
	return d.LoadMetadataForClass(ctx, class)
}

// AllClassNames builds the driver if needed and delegates to it.
func (l *Lazy) AllClassNames(ctx context.Context) ([]string, error) {
	d, err := l.get()
	if err != nil {
		return nil, err
	}
	return d.AllClassNames(ctx)
}
