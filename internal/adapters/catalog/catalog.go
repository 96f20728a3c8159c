// Package catalog loads the class catalog that describes which classes exist
// and how they relate to each other.
package catalog

import (
	"cmp"
	"slices"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

// Catalog is an immutable, validated set of class descriptors.
type Catalog struct {
	byName map[domain.InternedString]*domain.Class
	sorted []*domain.Class
}

// New validates classes and returns them as a Catalog.
func New(classes ...*domain.Class) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[domain.InternedString]*domain.Class, len(classes)),
		sorted: make([]*domain.Class, 0, len(classes)),
	}

	for _, class := range classes {
		if err := validateName(class.Name.String()); err != nil {
			return nil, err
		}
		if _, exists := c.byName[class.Name]; exists {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateClass, "build catalog"), "class", class.Name.String())
		}
		c.byName[class.Name] = class
		c.sorted = append(c.sorted, class)
	}

	for _, class := range c.sorted {
		if err := c.validateRelations(class); err != nil {
			return nil, zerr.With(err, "class", class.Name.String())
		}
	}

	slices.SortFunc(c.sorted, func(a, b *domain.Class) int {
		return cmp.Compare(a.Name.String(), b.Name.String())
	})

	return c, nil
}

// Resolve returns the descriptor of the named class.
func (c *Catalog) Resolve(name string) (*domain.Class, error) {
	class, ok := c.byName[domain.NewInternedString(name)]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrClassNotFound, "resolve class"), "class", name)
	}
	return class, nil
}

// Classes returns every class sorted by name.
func (c *Catalog) Classes() []*domain.Class {
	return slices.Clone(c.sorted)
}

// Len returns the number of classes in the catalog.
func (c *Catalog) Len() int {
	return len(c.sorted)
}

func (c *Catalog) validateRelations(class *domain.Class) error {
	if class.HasParent() {
		if class.IsInterface() {
			return zerr.With(zerr.Wrap(domain.ErrInvalidParent, "validate parent"), "parent", class.Parent.String())
		}
		parent, ok := c.byName[class.Parent]
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrMissingParent, "validate parent"), "parent", class.Parent.String())
		}
		if parent.IsInterface() {
			return zerr.With(zerr.Wrap(domain.ErrInvalidParent, "validate parent"), "parent", class.Parent.String())
		}
	}

	for _, name := range class.Interfaces {
		iface, ok := c.byName[name]
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrMissingInterface, "validate interfaces"), "interface", name.String())
		}
		if !iface.IsInterface() {
			return zerr.With(zerr.Wrap(domain.ErrNotAnInterface, "validate interfaces"), "interface", name.String())
		}
	}

	return nil
}
