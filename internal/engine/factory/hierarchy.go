package factory

import (
	"errors"
	"slices"
	"strings"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// ClassHierarchy returns the classes queried for the metadata of name, root-most first
// and name itself last.
//
// The extends chain is collected from name upwards and reversed. With interfaces
// enabled, every class in that chain is preceded by the interfaces it implements
// that were not emitted yet, each interface after the interfaces it extends.
// No class or interface appears twice.
func ClassHierarchy(resolver ports.ClassResolver, name string, includeInterfaces bool) ([]*domain.Class, error) {
	class, err := resolve(resolver, name)
	if err != nil {
		return nil, err
	}

	chain, err := extendsChain(resolver, class)
	if err != nil {
		return nil, err
	}
	if !includeInterfaces {
		return chain, nil
	}

	w := &interfaceWalker{
		resolver: resolver,
		emitted:  make(map[domain.InternedString]bool),
		visiting: make(map[domain.InternedString]bool),
	}
	for _, c := range chain {
		for _, iface := range c.Interfaces {
			if err := w.visit(iface); err != nil {
				return nil, err
			}
		}
		w.emit(c)
	}
	return w.order, nil
}

func resolve(resolver ports.ClassResolver, name string) (*domain.Class, error) {
	class, err := resolver.Resolve(name)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrClassNotLoadable, err), "class", name)
	}
	return class, nil
}

// extendsChain follows Parent links from class to the root and returns them root first.
func extendsChain(resolver ports.ClassResolver, class *domain.Class) ([]*domain.Class, error) {
	chain := []*domain.Class{class}
	seen := map[domain.InternedString]bool{class.Name: true}

	for cur := class; cur.HasParent(); {
		if seen[cur.Parent] {
			path := append(domain.Strings(classNames(chain)), cur.Parent.String())
			return nil, zerr.With(
				zerr.Wrap(domain.ErrInheritanceCycle, "resolve class hierarchy"),
				"cycle", strings.Join(path, " -> "),
			)
		}
		parent, err := resolve(resolver, cur.Parent.String())
		if err != nil {
			return nil, zerr.With(err, "child", cur.Name.String())
		}
		seen[parent.Name] = true
		chain = append(chain, parent)
		cur = parent
	}

	slices.Reverse(chain)
	return chain, nil
}

func classNames(classes []*domain.Class) []domain.InternedString {
	names := make([]domain.InternedString, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return names
}

type interfaceWalker struct {
	resolver ports.ClassResolver
	order    []*domain.Class
	emitted  map[domain.InternedString]bool
	visiting map[domain.InternedString]bool
	path     []string
}

func (w *interfaceWalker) emit(c *domain.Class) {
	if w.emitted[c.Name] {
		return
	}
	w.emitted[c.Name] = true
	w.order = append(w.order, c)
}

// visit emits name after everything it extends.
func (w *interfaceWalker) visit(name domain.InternedString) error {
	if w.emitted[name] {
		return nil
	}
	if w.visiting[name] {
		path := append(slices.Clone(w.path), name.String())
		return zerr.With(
			zerr.Wrap(domain.ErrInheritanceCycle, "resolve interfaces"),
			"cycle", strings.Join(path, " -> "),
		)
	}

	iface, err := resolve(w.resolver, name.String())
	if err != nil {
		return err
	}

	w.visiting[name] = true
	w.path = append(w.path, name.String())
	for _, parent := range iface.Interfaces {
		if err := w.visit(parent); err != nil {
			return err
		}
	}
	w.path = w.path[:len(w.path)-1]
	delete(w.visiting, name)

	w.emit(iface)
	return nil
}
