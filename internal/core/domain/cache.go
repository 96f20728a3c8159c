package domain

import (
	"slices"
	"time"
)

// LookupOptions are the factory settings that shape a resolved hierarchy.
type LookupOptions struct {
	Container         ContainerKind
	IncludeInterfaces bool
}

// CacheEntry is what a persistent metadata cache stores for one class.
// A nil Hierarchy is the absent marker: the class was resolved and no level
// produced metadata.
type CacheEntry struct {
	// Class is the requested class.
	Class InternedString
	// Hierarchy is the resolved metadata, nil when absent.
	Hierarchy Hierarchy
	// Resources are the files whose modification invalidates the entry.
	Resources []string
	// CreatedAt is when the entry was produced.
	CreatedAt time.Time
	// Options are the settings the hierarchy was resolved with.
	Options LookupOptions
}

// NewCacheEntry builds an entry for a resolved hierarchy.
func NewCacheEntry(class *Class, h Hierarchy, now time.Time) *CacheEntry {
	e := NewAbsentEntry(class, now)
	e.Hierarchy = h
	if h == nil {
		return e
	}
	for _, l := range h.Levels() {
		e.AddResources(l.Base().FileResources...)
	}
	return e
}

// AddResources records additional files the entry depends on.
func (e *CacheEntry) AddResources(paths ...string) {
	for _, p := range paths {
		if p != "" && !slices.Contains(e.Resources, p) {
			e.Resources = append(e.Resources, p)
		}
	}
}

// NewAbsentEntry builds the absent marker for class.
func NewAbsentEntry(class *Class, now time.Time) *CacheEntry {
	e := &CacheEntry{Class: class.Name, CreatedAt: now}
	if class.SourceFile != "" {
		e.Resources = []string{class.SourceFile}
	}
	return e
}

// Matches reports whether the entry was resolved with opts.
func (e *CacheEntry) Matches(opts LookupOptions) bool {
	return e.Options == opts
}

// IsAbsent reports whether the entry records that no metadata exists.
func (e *CacheEntry) IsAbsent() bool {
	return e.Hierarchy == nil
}

// IsFresh reports whether no resource changed after the entry was created and
// every level of the hierarchy is still fresh.
func (e *CacheEntry) IsFresh(modTime ModTimeFunc) bool {
	for _, path := range e.Resources {
		mt, err := modTime(path)
		if err != nil || mt.After(e.CreatedAt) {
			return false
		}
	}
	return e.Hierarchy == nil || e.Hierarchy.IsFresh(modTime)
}
