package domain

import (
	"slices"
	"time"
)

// ModTimeFunc returns the last modification time of a file.
type ModTimeFunc func(path string) (time.Time, error)

// Metadata is satisfied by the metadata of a single class level.
type Metadata interface {
	// Name returns the class the metadata describes.
	Name() InternedString
	// Base exposes the underlying per-class record.
	Base() *ClassMetadata
	// IsFresh reports whether every file the metadata was built from is unchanged.
	IsFresh(modTime ModTimeFunc) bool
}

// Mergeable is implemented by metadata that can absorb the metadata of another level.
type Mergeable interface {
	Metadata
	// Merge folds other into the receiver. Entries from other win on key collisions.
	Merge(other Metadata)
}

// PropertyMetadata describes one property declared on a class.
type PropertyMetadata struct {
	Class      InternedString
	Name       string
	Attributes map[string]string
}

// MethodMetadata describes one method declared on a class.
type MethodMetadata struct {
	Class      InternedString
	Name       string
	Attributes map[string]string
}

// ClassMetadata holds the metadata of exactly one class level.
type ClassMetadata struct {
	name InternedString

	// Properties are keyed by property name in declaration order.
	Properties *OrderedMap[*PropertyMetadata]
	// Methods are keyed by method name in declaration order.
	Methods *OrderedMap[*MethodMetadata]
	// FileResources lists the files read to build this metadata.
	FileResources []string
	// CreatedAt is the time the metadata was produced.
	CreatedAt time.Time
}

// NewClassMetadata creates empty metadata for the named class.
func NewClassMetadata(name string) *ClassMetadata {
	return &ClassMetadata{
		name:       NewInternedString(name),
		Properties: NewOrderedMap[*PropertyMetadata](),
		Methods:    NewOrderedMap[*MethodMetadata](),
		CreatedAt:  time.Now(),
	}
}

// Name returns the class name. It never changes after construction.
func (m *ClassMetadata) Name() InternedString {
	return m.name
}

// Base returns m.
func (m *ClassMetadata) Base() *ClassMetadata {
	return m
}

// AddProperty registers p under its name.
func (m *ClassMetadata) AddProperty(p *PropertyMetadata) {
	m.Properties.Set(p.Name, p)
}

// AddMethod registers mm under its name.
func (m *ClassMetadata) AddMethod(mm *MethodMetadata) {
	m.Methods.Set(mm.Name, mm)
}

// AddFileResource records path as an input of this metadata.
func (m *ClassMetadata) AddFileResource(path string) {
	if !slices.Contains(m.FileResources, path) {
		m.FileResources = append(m.FileResources, path)
	}
}

// IsFresh reports whether no file resource was modified after CreatedAt.
// A resource that cannot be stat'ed makes the metadata stale.
func (m *ClassMetadata) IsFresh(modTime ModTimeFunc) bool {
	for _, path := range m.FileResources {
		mt, err := modTime(path)
		if err != nil || mt.After(m.CreatedAt) {
			return false
		}
	}
	return true
}

// Clone returns a copy whose maps and resources can be modified independently.
func (m *ClassMetadata) Clone() *ClassMetadata {
	return &ClassMetadata{
		name:          m.name,
		Properties:    m.Properties.Clone(),
		Methods:       m.Methods.Clone(),
		FileResources: slices.Clone(m.FileResources),
		CreatedAt:     m.CreatedAt,
	}
}

// MergeableClassMetadata is class metadata that supports Merge.
type MergeableClassMetadata struct {
	*ClassMetadata
}

// NewMergeableClassMetadata creates empty mergeable metadata for the named class.
func NewMergeableClassMetadata(name string) *MergeableClassMetadata {
	return &MergeableClassMetadata{ClassMetadata: NewClassMetadata(name)}
}

// Merge folds other into m. Properties and methods from other replace entries
// with the same key while keeping their position, new keys are appended, file
// resources are unioned and CreatedAt becomes the older of both timestamps.
// The name of m is not changed.
func (m *MergeableClassMetadata) Merge(other Metadata) {
	o := other.Base()
	for k, p := range o.Properties.All() {
		m.Properties.Set(k, p)
	}
	for k, mm := range o.Methods.All() {
		m.Methods.Set(k, mm)
	}
	for _, r := range o.FileResources {
		m.AddFileResource(r)
	}
	if o.CreatedAt.Before(m.CreatedAt) {
		m.CreatedAt = o.CreatedAt
	}
}

// Clone returns an independent copy.
func (m *MergeableClassMetadata) Clone() *MergeableClassMetadata {
	return &MergeableClassMetadata{ClassMetadata: m.ClassMetadata.Clone()}
}
