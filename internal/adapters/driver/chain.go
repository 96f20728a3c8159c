package driver

import (
	"context"
	"slices"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
)

// Chain asks several drivers in order and returns the first metadata found.
type Chain struct {
	drivers []ports.Driver
}

// NewChain creates a Chain over drivers.
func NewChain(drivers ...ports.Driver) *Chain {
	return &Chain{drivers: drivers}
}

// LoadMetadataForClass returns the first non-nil metadata. A driver error stops the chain.
func (c *Chain) LoadMetadataForClass(ctx context.Context, class *domain.Class) (domain.Metadata, error) {
	for _, d := range c.drivers {
		md, err := d.LoadMetadataForClass(ctx, class)
		if err != nil {
			return nil, err
		}
		if md != nil {
			return md, nil
		}
	}
	return nil, nil
}

// AllClassNames unions the names of every advanced driver in the chain.
// It fails with domain.ErrUnsupportedCapability when no driver can enumerate.
func (c *Chain) AllClassNames(ctx context.Context) ([]string, error) {
	var names []string
	advanced := false
	for _, d := range c.drivers {
		ad, ok := d.(ports.AdvancedDriver)
		if !ok {
			continue
		}
		advanced = true
		found, err := ad.AllClassNames(ctx)
		if err != nil {
			return nil, err
		}
		names = append(names, found...)
	}
	if !advanced {
		return nil, domain.ErrUnsupportedCapability
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}
