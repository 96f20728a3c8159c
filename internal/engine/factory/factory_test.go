package factory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/classmeta/internal/core/ports/mocks"
	"go.trai.ch/classmeta/internal/engine/factory"
	"go.uber.org/mock/gomock"
)

type factoryTestMocks struct {
	driver *mocks.MockAdvancedDriver
	cache  *mocks.MockMetadataCache
	logger *mocks.MockLogger
}

func setupFactoryTest(t *testing.T) (*gomock.Controller, factoryTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := factoryTestMocks{
		driver: mocks.NewMockAdvancedDriver(ctrl),
		cache:  mocks.NewMockMetadataCache(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return ctrl, m
}

func TestFactory_LevelsRootFirst(t *testing.T) {
	_, m := setupFactoryTest(t)

	gomock.InOrder(
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("BaseClass")).Return(plain("BaseClass", "foo"), nil),
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("SubClassA")).Return(nil, nil),
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Leaf")).Return(plain("Leaf", "bar"), nil),
	)

	f := factory.New(m.driver, fixtureResolver(), factory.WithLogger(m.logger))
	h, err := f.GetMetadataForClass(context.Background(), "Leaf")
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, []string{"BaseClass", "Leaf"}, levelNames(h))
	assert.Equal(t, "Leaf", h.Name().String())
	assert.Equal(t, domain.ContainerPlain, h.Kind())
}

func TestFactory_InterfacesQueriedFirst(t *testing.T) {
	_, m := setupFactoryTest(t)

	gomock.InOrder(
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("InterfaceA")).Return(nil, nil),
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("BaseClass")).Return(nil, nil),
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("InterfaceB")).Return(nil, nil),
		m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("SubClassA")).Return(nil, nil),
	)

	f := factory.New(m.driver, fixtureResolver(), factory.WithLogger(m.logger))
	f.SetIncludeInterfaces(true)

	h, err := f.GetMetadataForClass(context.Background(), "SubClassA")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestFactory_MergedViewPerSubclass(t *testing.T) {
	_, m := setupFactoryTest(t)
	resolver := newResolver("Base", "SubA:Base", "SubB:Base")

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Base")).
		DoAndReturn(func(context.Context, *domain.Class) (domain.Metadata, error) {
			return mergeable("Base", "foo"), nil
		}).Times(2)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("SubA")).Return(mergeable("SubA", "bar"), nil)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("SubB")).Return(mergeable("SubB", "baz"), nil)

	f := factory.New(m.driver, resolver,
		factory.WithContainer(domain.ContainerMergeable),
		factory.WithLogger(m.logger),
	)

	ha, err := f.GetMetadataForClass(context.Background(), "SubA")
	require.NoError(t, err)
	hb, err := f.GetMetadataForClass(context.Background(), "SubB")
	require.NoError(t, err)

	ma, ok := ha.(*domain.MergeableHierarchyMetadata)
	require.True(t, ok)
	mb, ok := hb.(*domain.MergeableHierarchyMetadata)
	require.True(t, ok)

	assert.Equal(t, []string{"foo", "bar"}, ma.Merged().Properties.Keys())
	assert.Equal(t, []string{"foo", "baz"}, mb.Merged().Properties.Keys())
	assert.Equal(t, []string{"Base", "SubA"}, levelNames(ha), "per-level list stays unmerged")
}

func TestFactory_NamedAfterRequestedClass(t *testing.T) {
	_, m := setupFactoryTest(t)
	resolver := newResolver("Base", "Sub:Base")

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Base")).Return(mergeable("Base", "foo"), nil)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Sub")).Return(nil, nil)

	f := factory.New(m.driver, resolver,
		factory.WithContainer(domain.ContainerMergeable),
		factory.WithLogger(m.logger),
	)

	h, err := f.GetMetadataForClass(context.Background(), "Sub")
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "Sub", h.Name().String())
	assert.Equal(t, []string{"Base"}, levelNames(h))

	mh, ok := h.(*domain.MergeableHierarchyMetadata)
	require.True(t, ok)
	merged := mh.Merged()
	assert.Equal(t, "Sub", merged.Name().String())
	assert.Equal(t, []string{"foo"}, merged.Properties.Keys())
}

func TestFactory_MergeableFallsBackToPlain(t *testing.T) {
	_, m := setupFactoryTest(t)
	resolver := newResolver("Base", "Sub:Base")

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Base")).Return(plain("Base", "foo"), nil)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Sub")).Return(mergeable("Sub", "bar"), nil)

	f := factory.New(m.driver, resolver,
		factory.WithContainer(domain.ContainerMergeable),
		factory.WithLogger(m.logger),
	)

	h, err := f.GetMetadataForClass(context.Background(), "Sub")
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerPlain, h.Kind())
	_, ok := h.(*domain.ClassHierarchyMetadata)
	assert.True(t, ok)
}

func TestFactory_MemoryTierIsIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		result domain.Metadata
	}{
		{name: "with metadata", result: plain("A", "foo")},
		{name: "absent", result: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := setupFactoryTest(t)
			m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("A")).Return(tt.result, nil).Times(1)

			f := factory.New(m.driver, newResolver("A"), factory.WithLogger(m.logger))
			first, err := f.GetMetadataForClass(context.Background(), "A")
			require.NoError(t, err)
			second, err := f.GetMetadataForClass(context.Background(), "A")
			require.NoError(t, err)

			assert.Equal(t, first, second)
			if tt.result == nil {
				assert.Nil(t, second)
			}
		})
	}
}

func TestFactory_CacheLoadAndPutOnce(t *testing.T) {
	_, m := setupFactoryTest(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("A")).Return(plain("A", "foo"), nil).Times(1)
	m.cache.EXPECT().Load(gomock.Any(), matchClass("A")).Return(nil, nil).Times(1)
	m.cache.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.CacheEntry) error {
		assert.Equal(t, "A", e.Class.String())
		assert.False(t, e.IsAbsent())
		assert.Equal(t, now, e.CreatedAt)
		assert.Contains(t, e.Resources, "/src/A.go")
		return nil
	}).Times(1)

	f := factory.New(m.driver, newResolver("A"),
		factory.WithCache(m.cache),
		factory.WithLogger(m.logger),
		factory.WithClock(func() time.Time { return now }),
	)
	for range 3 {
		h, err := f.GetMetadataForClass(context.Background(), "A")
		require.NoError(t, err)
		require.NotNil(t, h)
	}
}

func TestFactory_PersistentHit(t *testing.T) {
	_, m := setupFactoryTest(t)

	stored := domain.NewClassHierarchyMetadata("A")
	require.NoError(t, stored.Add(plain("A", "foo")))
	class := &domain.Class{Name: domain.NewInternedString("A")}
	entry := domain.NewCacheEntry(class, stored, time.Now())
	entry.Options = domain.LookupOptions{Container: domain.ContainerPlain}

	m.cache.EXPECT().Load(gomock.Any(), matchClass("A")).Return(entry, nil).Times(1)

	f := factory.New(m.driver, newResolver("A"), factory.WithCache(m.cache), factory.WithLogger(m.logger))
	for range 2 {
		h, err := f.GetMetadataForClass(context.Background(), "A")
		require.NoError(t, err)
		assert.Same(t, stored, h)
	}
}

func TestFactory_AbsentCachingPolicy(t *testing.T) {
	tests := []struct {
		name            string
		debug           bool
		wantPuts        int
		wantDriverCalls int
	}{
		{name: "production persists absent", debug: false, wantPuts: 1, wantDriverCalls: 1},
		{name: "debug never persists absent", debug: true, wantPuts: 0, wantDriverCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := setupFactoryTest(t)
			cache := newFakeCache()

			m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("A")).Return(nil, nil).Times(tt.wantDriverCalls)

			provider := factory.NewProvider(m.driver, newResolver("A"),
				factory.WithCache(cache),
				factory.WithDebug(tt.debug),
				factory.WithLogger(m.logger),
			)

			for range 2 {
				h, err := provider.New().GetMetadataForClass(context.Background(), "A")
				require.NoError(t, err)
				assert.Nil(t, h)
			}

			assert.Equal(t, tt.wantPuts, cache.puts)
			assert.Equal(t, 2, cache.loads)
		})
	}
}

func TestFactory_DebugStillPersistsPositiveResults(t *testing.T) {
	_, m := setupFactoryTest(t)
	cache := newFakeCache()

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("A")).Return(plain("A"), nil).Times(1)

	provider := factory.NewProvider(m.driver, newResolver("A"),
		factory.WithCache(cache),
		factory.WithDebug(true),
		factory.WithLogger(m.logger),
	)

	for range 2 {
		h, err := provider.New().GetMetadataForClass(context.Background(), "A")
		require.NoError(t, err)
		require.NotNil(t, h)
	}
	assert.Equal(t, 1, cache.puts)
}

func TestFactory_CachedEntryFromOtherSettingsIsAMiss(t *testing.T) {
	_, m := setupFactoryTest(t)
	resolver := newResolver("!IfaceA", "Base::IfaceA", "Sub:Base")
	cache := newFakeCache()

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("IfaceA")).Return(mergeable("IfaceA", "a"), nil).Times(1)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Base")).Return(mergeable("Base", "b"), nil).Times(3)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("Sub")).Return(mergeable("Sub", "c"), nil).Times(3)

	defaults := factory.New(m.driver, resolver, factory.WithCache(cache), factory.WithLogger(m.logger))
	h, err := defaults.GetMetadataForClass(context.Background(), "Sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Sub"}, levelNames(h))
	assert.Equal(t, domain.ContainerPlain, h.Kind())

	overridden := factory.New(m.driver, resolver,
		factory.WithCache(cache),
		factory.WithLogger(m.logger),
		factory.WithIncludeInterfaces(true),
		factory.WithContainer(domain.ContainerMergeable),
	)
	h, err = overridden.GetMetadataForClass(context.Background(), "Sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"IfaceA", "Base", "Sub"}, levelNames(h))
	assert.Equal(t, domain.ContainerMergeable, h.Kind())

	entry := cache.entries[domain.NewInternedString("Sub")]
	require.NotNil(t, entry)
	assert.Equal(t, domain.LookupOptions{Container: domain.ContainerMergeable, IncludeInterfaces: true}, entry.Options)

	// The defaults no longer match the stored entry either.
	again := factory.New(m.driver, resolver, factory.WithCache(cache), factory.WithLogger(m.logger))
	h, err = again.GetMetadataForClass(context.Background(), "Sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Sub"}, levelNames(h))
	assert.Equal(t, 3, cache.puts)
}

func TestFactory_MatchingCachedEntryIsReused(t *testing.T) {
	_, m := setupFactoryTest(t)
	resolver := newResolver("Base", "Sub:Base")
	cache := newFakeCache()

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	opts := []factory.Option{
		factory.WithCache(cache),
		factory.WithLogger(m.logger),
		factory.WithContainer(domain.ContainerMergeable),
	}
	for range 2 {
		h, err := factory.New(m.driver, resolver, opts...).GetMetadataForClass(context.Background(), "Sub")
		require.NoError(t, err)
		assert.Nil(t, h)
	}
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, 2, cache.loads)
}

func TestFactory_CacheFailuresAreMisses(t *testing.T) {
	_, m := setupFactoryTest(t)

	m.cache.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk on fire"))
	m.cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk still on fire"))
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("A")).Return(plain("A"), nil)
	m.logger.EXPECT().Warn(gomock.Any()).Times(2)
	m.logger.EXPECT().Error(gomock.Any()).Times(2)

	f := factory.New(m.driver, newResolver("A"), factory.WithCache(m.cache), factory.WithLogger(m.logger))
	h, err := f.GetMetadataForClass(context.Background(), "A")
	require.NoError(t, err)
	require.NotNil(t, h)
}

func TestFactory_SetCache(t *testing.T) {
	_, m := setupFactoryTest(t)
	cache := newFakeCache()

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	f := factory.New(m.driver, newResolver("A", "B"), factory.WithLogger(m.logger))
	_, err := f.GetMetadataForClass(context.Background(), "A")
	require.NoError(t, err)
	assert.Zero(t, cache.loads)

	f.SetCache(cache)
	_, err = f.GetMetadataForClass(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.loads)
	assert.Equal(t, 1, cache.puts)
}

func TestFactory_ClassNotLoadable(t *testing.T) {
	_, m := setupFactoryTest(t)

	f := factory.New(m.driver, newResolver("A"), factory.WithCache(m.cache), factory.WithLogger(m.logger))
	h, err := f.GetMetadataForClass(context.Background(), "Missing")
	require.ErrorIs(t, err, domain.ErrClassNotLoadable)
	assert.Nil(t, h)
}

func TestFactory_DriverError(t *testing.T) {
	_, m := setupFactoryTest(t)
	boom := errors.New("boom")

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), gomock.Any()).Return(nil, boom).Times(2)

	f := factory.New(m.driver, newResolver("A"), factory.WithLogger(m.logger))
	_, err := f.GetMetadataForClass(context.Background(), "A")
	require.ErrorIs(t, err, boom)

	// Failures are not memoized.
	_, err = f.GetMetadataForClass(context.Background(), "A")
	require.ErrorIs(t, err, boom)
}

func TestFactory_IdentityMismatchUsesReturnedName(t *testing.T) {
	_, m := setupFactoryTest(t)

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), matchClass("A")).Return(plain("Alias"), nil)
	m.logger.EXPECT().Warn("driver returned metadata for Alias when asked for A").Times(1)

	f := factory.New(m.driver, newResolver("A"), factory.WithLogger(m.logger))
	h, err := f.GetMetadataForClass(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alias"}, levelNames(h))
	assert.Equal(t, "A", h.Name().String())
}

func TestFactory_AllClassNames(t *testing.T) {
	t.Run("advanced driver", func(t *testing.T) {
		_, m := setupFactoryTest(t)
		m.driver.EXPECT().AllClassNames(gomock.Any()).Return([]string{"B", "A"}, nil)

		names, err := factory.New(m.driver, newResolver()).AllClassNames(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, names)
	})

	t.Run("empty is not a failure", func(t *testing.T) {
		_, m := setupFactoryTest(t)
		m.driver.EXPECT().AllClassNames(gomock.Any()).Return([]string{}, nil)

		names, err := factory.New(m.driver, newResolver()).AllClassNames(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("plain driver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		driver := mocks.NewMockDriver(ctrl)

		names, err := factory.New(driver, newResolver()).AllClassNames(context.Background())
		require.ErrorIs(t, err, domain.ErrUnsupportedCapability)
		assert.Nil(t, names)
	})
}

func TestFactory_Spans(t *testing.T) {
	ctrl, m := setupFactoryTest(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().Start(gomock.Any(), "metadata.lookup", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).Times(1)
	span.EXPECT().SetAttribute("source", factory.SourceDriver)
	span.EXPECT().SetAttribute("absent", false)
	span.EXPECT().SetAttribute("levels", 1)
	span.EXPECT().End()

	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), gomock.Any()).Return(plain("A"), nil)

	f := factory.New(m.driver, newResolver("A"), factory.WithTracer(tracer), factory.WithLogger(m.logger))
	_, err := f.GetMetadataForClass(context.Background(), "A")
	require.NoError(t, err)

	// Memory hits do not open spans.
	_, err = f.GetMetadataForClass(context.Background(), "A")
	require.NoError(t, err)
}

func TestProvider_FactoriesDoNotShareMemory(t *testing.T) {
	_, m := setupFactoryTest(t)
	m.driver.EXPECT().LoadMetadataForClass(gomock.Any(), gomock.Any()).Return(plain("A"), nil).Times(2)

	p := factory.NewProvider(m.driver, newResolver("A"), factory.WithLogger(m.logger))
	for range 2 {
		_, err := p.New().GetMetadataForClass(context.Background(), "A")
		require.NoError(t, err)
	}
	assert.NotNil(t, p.Resolver())
}
