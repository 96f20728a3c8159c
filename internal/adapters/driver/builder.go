package driver

import (
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
)

// Builder implements ports.DriverBuilder. It chains one file driver per metadata directory.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns a lazily constructed chain over cfg.MetadataDirs.
// Earlier directories take precedence.
func (b *Builder) Build(cfg *domain.Config) (ports.AdvancedDriver, error) {
	if len(cfg.Formats) == 0 {
		return nil, domain.ErrUnsupportedFormat
	}
	for _, f := range cfg.Formats {
		if len(f.Extensions()) == 0 {
			return nil, domain.ErrUnsupportedFormat
		}
	}

	dirs := cfg.MetadataDirs
	formats := cfg.Formats
	return NewLazy(func() (ports.AdvancedDriver, error) {
		drivers := make([]ports.Driver, 0, len(dirs))
		for _, dir := range dirs {
			drivers = append(drivers, NewFileDriver(NewFileLocator([]string{dir}, formats)))
		}
		return NewChain(drivers...), nil
	}), nil
}
