package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// ContainerKind selects the hierarchy container the factory assembles.
type ContainerKind string

const (
	// ContainerPlain keeps the levels side by side.
	ContainerPlain ContainerKind = "plain"
	// ContainerMergeable additionally offers a merged view over all levels.
	ContainerMergeable ContainerKind = "mergeable"
)

// ParseContainerKind validates a configured container name. Empty means plain.
func ParseContainerKind(s string) (ContainerKind, error) {
	switch ContainerKind(s) {
	case "", ContainerPlain:
		return ContainerPlain, nil
	case ContainerMergeable:
		return ContainerMergeable, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidContainerKind, "parse container kind"), "container", s)
	}
}

// Hierarchy is the resolved metadata of a class and its ancestors.
type Hierarchy interface {
	// Name returns the requested class, the most derived of the hierarchy.
	// It may have no level of its own.
	Name() InternedString
	// Levels returns a copy of the per-class metadata, root-most first.
	Levels() []Metadata
	// Level looks up the metadata of one class in the hierarchy.
	Level(name InternedString) (Metadata, bool)
	// Root returns the root-most level.
	Root() Metadata
	// Outermost returns the most derived level.
	Outermost() Metadata
	// Len returns the number of levels.
	Len() int
	// IsFresh reports whether every level is fresh.
	IsFresh(modTime ModTimeFunc) bool
	// Kind reports which container holds the levels.
	Kind() ContainerKind
}

// ClassHierarchyMetadata is an ordered set of class levels, at most one per class.
// Levels are added while the hierarchy is assembled; once handed out it is
// treated as read-only.
type ClassHierarchyMetadata struct {
	name   InternedString
	levels []Metadata
	index  map[InternedString]int
}

// NewClassHierarchyMetadata creates an empty hierarchy for the requested class.
func NewClassHierarchyMetadata(class string) *ClassHierarchyMetadata {
	return &ClassHierarchyMetadata{
		name:  NewInternedString(class),
		index: make(map[InternedString]int),
	}
}

// Add appends a more derived level. It is only meant for assembly.
func (h *ClassHierarchyMetadata) Add(m Metadata) error {
	if _, ok := h.index[m.Name()]; ok {
		return zerr.With(zerr.Wrap(ErrDuplicateLevel, "add hierarchy level"), "class", m.Name().String())
	}
	h.index[m.Name()] = len(h.levels)
	h.levels = append(h.levels, m)
	return nil
}

// Name returns the requested class.
func (h *ClassHierarchyMetadata) Name() InternedString {
	return h.name
}

// Levels returns the levels root-most first.
func (h *ClassHierarchyMetadata) Levels() []Metadata {
	return slices.Clone(h.levels)
}

// Level returns the metadata recorded for name.
func (h *ClassHierarchyMetadata) Level(name InternedString) (Metadata, bool) {
	i, ok := h.index[name]
	if !ok {
		return nil, false
	}
	return h.levels[i], true
}

// Root returns the first level, or nil when empty.
func (h *ClassHierarchyMetadata) Root() Metadata {
	if len(h.levels) == 0 {
		return nil
	}
	return h.levels[0]
}

// Outermost returns the last level, or nil when empty.
func (h *ClassHierarchyMetadata) Outermost() Metadata {
	if len(h.levels) == 0 {
		return nil
	}
	return h.levels[len(h.levels)-1]
}

// Len returns the number of levels.
func (h *ClassHierarchyMetadata) Len() int {
	return len(h.levels)
}

// IsFresh reports whether every level is fresh.
func (h *ClassHierarchyMetadata) IsFresh(modTime ModTimeFunc) bool {
	for _, l := range h.levels {
		if !l.IsFresh(modTime) {
			return false
		}
	}
	return true
}

// Kind returns ContainerPlain.
func (h *ClassHierarchyMetadata) Kind() ContainerKind {
	return ContainerPlain
}

// MergeableHierarchyMetadata is a hierarchy whose levels are all mergeable.
type MergeableHierarchyMetadata struct {
	*ClassHierarchyMetadata
}

// NewMergeableHierarchyMetadata creates an empty mergeable hierarchy for the requested class.
func NewMergeableHierarchyMetadata(class string) *MergeableHierarchyMetadata {
	return &MergeableHierarchyMetadata{ClassHierarchyMetadata: NewClassHierarchyMetadata(class)}
}

// Add appends a more derived mergeable level.
func (h *MergeableHierarchyMetadata) Add(m Mergeable) error {
	return h.ClassHierarchyMetadata.Add(m)
}

// Kind returns ContainerMergeable.
func (h *MergeableHierarchyMetadata) Kind() ContainerKind {
	return ContainerMergeable
}

// Merged folds all levels root to leaf into new metadata named after the
// requested class. The stored levels are left untouched.
func (h *MergeableHierarchyMetadata) Merged() *MergeableClassMetadata {
	if h.Len() == 0 {
		return nil
	}
	merged := NewMergeableClassMetadata(h.Name().String())
	for _, l := range h.levels {
		merged.Merge(l)
	}
	return merged
}
