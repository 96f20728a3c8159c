package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/classmeta/internal/core/domain"
)

func property(class, name, value string) *domain.PropertyMetadata {
	return &domain.PropertyMetadata{
		Class:      domain.NewInternedString(class),
		Name:       name,
		Attributes: map[string]string{"value": value},
	}
}

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	m := domain.NewOrderedMap[int]()
	m.Set("foo", 1)
	m.Set("bar", 2)
	m.Set("foo", 3)

	assert.Equal(t, []string{"foo", "bar"}, m.Keys())
	v, ok := m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())

	var zero domain.OrderedMap[string]
	zero.Set("a", "b")
	assert.Equal(t, 1, zero.Len())
}

func TestClassMetadata_NameIsFixed(t *testing.T) {
	m := domain.NewClassMetadata("App\\User")
	assert.Equal(t, "App\\User", m.Name().String())
	assert.Same(t, m, m.Base())
	assert.False(t, m.CreatedAt.IsZero())
}

func TestClassMetadata_AddFileResourceDeduplicates(t *testing.T) {
	m := domain.NewClassMetadata("A")
	m.AddFileResource("/a.yaml")
	m.AddFileResource("/a.yaml")
	m.AddFileResource("/b.yaml")
	assert.Equal(t, []string{"/a.yaml", "/b.yaml"}, m.FileResources)
}

func TestClassMetadata_IsFresh(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		modTime domain.ModTimeFunc
		want    bool
	}{
		{
			name:    "unchanged",
			modTime: func(string) (time.Time, error) { return created.Add(-time.Minute), nil },
			want:    true,
		},
		{
			name:    "same instant",
			modTime: func(string) (time.Time, error) { return created, nil },
			want:    true,
		},
		{
			name:    "modified later",
			modTime: func(string) (time.Time, error) { return created.Add(time.Second), nil },
			want:    false,
		},
		{
			name:    "missing file",
			modTime: func(string) (time.Time, error) { return time.Time{}, errors.New("gone") },
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.NewClassMetadata("A")
			m.CreatedAt = created
			m.AddFileResource("/a.yaml")
			assert.Equal(t, tt.want, m.IsFresh(tt.modTime))
		})
	}
}

func TestMergeableClassMetadata_Merge(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	base := domain.NewMergeableClassMetadata("Base")
	base.AddProperty(property("Base", "foo", "base"))
	base.AddProperty(property("Base", "bar", "base"))
	base.AddMethod(&domain.MethodMetadata{Class: domain.NewInternedString("Base"), Name: "run"})
	base.AddFileResource("/base.yaml")

	derived := domain.NewMergeableClassMetadata("Derived")
	derived.AddProperty(property("Derived", "foo", "derived"))
	derived.AddProperty(property("Derived", "baz", "derived"))
	derived.AddFileResource("/derived.yaml")
	derived.CreatedAt = older

	base.Merge(derived)

	assert.Equal(t, "Base", base.Name().String(), "merge must not rename the receiver")
	assert.Equal(t, []string{"foo", "bar", "baz"}, base.Properties.Keys())

	foo, ok := base.Properties.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "derived", foo.Attributes["value"])
	assert.Equal(t, []string{"run"}, base.Methods.Keys())
	assert.Equal(t, []string{"/base.yaml", "/derived.yaml"}, base.FileResources)
	assert.Equal(t, older, base.CreatedAt)
}

func TestMergeableClassMetadata_CloneIsIndependent(t *testing.T) {
	m := domain.NewMergeableClassMetadata("A")
	m.AddProperty(property("A", "foo", "1"))

	c := m.Clone()
	c.AddProperty(property("A", "bar", "2"))

	assert.Equal(t, []string{"foo"}, m.Properties.Keys())
	assert.Equal(t, []string{"foo", "bar"}, c.Properties.Keys())
}

func TestMetadataCapabilities(t *testing.T) {
	var plain domain.Metadata = domain.NewClassMetadata("A")
	var mergeable domain.Metadata = domain.NewMergeableClassMetadata("A")

	_, ok := plain.(domain.Mergeable)
	assert.False(t, ok)
	_, ok = mergeable.(domain.Mergeable)
	assert.True(t, ok)
}
