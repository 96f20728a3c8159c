package factory_test

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// stubResolver resolves classes from a fixed table.
// Entries are written as "Name", "Name:Parent" or "Name:Parent:IfaceA,IfaceB";
// a leading "!" marks an interface.
type stubResolver struct {
	classes map[string]*domain.Class
}

func newResolver(entries ...string) *stubResolver {
	r := &stubResolver{classes: make(map[string]*domain.Class)}
	for _, e := range entries {
		kind := domain.KindClass
		if strings.HasPrefix(e, "!") {
			kind = domain.KindInterface
			e = e[1:]
		}
		parts := strings.Split(e, ":")
		c := &domain.Class{
			Name:       domain.NewInternedString(parts[0]),
			Kind:       kind,
			SourceFile: "/src/" + parts[0] + ".go",
		}
		if len(parts) > 1 && parts[1] != "" {
			c.Parent = domain.NewInternedString(parts[1])
		}
		if len(parts) > 2 && parts[2] != "" {
			c.Interfaces = domain.NewInternedStrings(strings.Split(parts[2], ","))
		}
		r.classes[parts[0]] = c
	}
	return r
}

func (r *stubResolver) Resolve(name string) (*domain.Class, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, zerr.With(domain.ErrClassNotFound, "class", name)
	}
	return c, nil
}

func (r *stubResolver) Classes() []*domain.Class {
	res := make([]*domain.Class, 0, len(r.classes))
	for _, c := range r.classes {
		res = append(res, c)
	}
	slices.SortFunc(res, func(a, b *domain.Class) int { return strings.Compare(a.Name.String(), b.Name.String()) })
	return res
}

// fakeCache is an in-memory MetadataCache that counts calls.
type fakeCache struct {
	entries map[domain.InternedString]*domain.CacheEntry
	loads   int
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[domain.InternedString]*domain.CacheEntry)}
}

func (c *fakeCache) Load(_ context.Context, class *domain.Class) (*domain.CacheEntry, error) {
	c.loads++
	return c.entries[class.Name], nil
}

func (c *fakeCache) Put(_ context.Context, entry *domain.CacheEntry) error {
	c.puts++
	c.entries[entry.Class] = entry
	return nil
}

func (c *fakeCache) Evict(_ context.Context, class domain.InternedString) error {
	delete(c.entries, class)
	return nil
}

// classMatcher implements gomock.Matcher for *domain.Class.
type classMatcher struct {
	name string
}

func (m classMatcher) Matches(x any) bool {
	c, ok := x.(*domain.Class)
	if !ok {
		return false
	}
	return c.Name.String() == m.name
}

func (m classMatcher) String() string {
	return "class name is " + m.name
}

func matchClass(name string) gomock.Matcher {
	return classMatcher{name: name}
}

func mergeable(name string, props ...string) *domain.MergeableClassMetadata {
	m := domain.NewMergeableClassMetadata(name)
	for _, p := range props {
		m.AddProperty(&domain.PropertyMetadata{Class: m.Name(), Name: p})
	}
	return m
}

func plain(name string, props ...string) *domain.ClassMetadata {
	m := domain.NewClassMetadata(name)
	for _, p := range props {
		m.AddProperty(&domain.PropertyMetadata{Class: m.Name(), Name: p})
	}
	return m
}

func levelNames(h domain.Hierarchy) []string {
	names := make([]string, 0, h.Len())
	for _, l := range h.Levels() {
		names = append(names, l.Name().String())
	}
	return names
}

func classNames(classes []*domain.Class) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name.String()
	}
	return names
}
