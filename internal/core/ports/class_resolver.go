package ports

import "go.trai.ch/classmeta/internal/core/domain"

// ClassResolver turns class names into class descriptors.
//
//go:generate mockgen -source=class_resolver.go -destination=mocks/mock_class_resolver.go -package=mocks
type ClassResolver interface {
	// Resolve returns the descriptor of the named class.
	// It fails with domain.ErrClassNotFound when the class is unknown.
	Resolve(name string) (*domain.Class, error)

	// Classes returns every known class sorted by name.
	Classes() []*domain.Class
}
