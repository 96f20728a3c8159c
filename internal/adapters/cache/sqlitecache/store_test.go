package sqlitecache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/classmeta/internal/adapters/cache/sqlitecache"
	"go.trai.ch/classmeta/internal/adapters/codec"
	"go.trai.ch/classmeta/internal/core/domain"
)

func fixedModTime(at time.Time) domain.ModTimeFunc {
	return func(string) (time.Time, error) { return at, nil }
}

func openStore(t *testing.T, modTime domain.ModTimeFunc) *sqlitecache.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", domain.DatabaseFileName)
	store, err := sqlitecache.Open(context.Background(), path, codec.New(true), modTime)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func positive(name string, created time.Time) *domain.CacheEntry {
	md := domain.NewMergeableClassMetadata(name)
	md.CreatedAt = created
	md.AddProperty(&domain.PropertyMetadata{Class: md.Name(), Name: "id"})
	h := domain.NewMergeableHierarchyMetadata(name)
	if err := h.Add(md); err != nil {
		panic(err)
	}
	return domain.NewCacheEntry(&domain.Class{Name: domain.NewInternedString(name), SourceFile: "/src/x.php"}, h, created)
}

func TestStore_PutLoadReplace(t *testing.T) {
	created := time.Unix(500, 0)
	store := openStore(t, fixedModTime(created.Add(-time.Second)))
	ctx := context.Background()
	class := &domain.Class{Name: domain.NewInternedString(`App\User`), SourceFile: "/src/x.php"}

	got, err := store.Load(ctx, class)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put(ctx, domain.NewAbsentEntry(class, created)))
	got, err = store.Load(ctx, class)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsAbsent())

	require.NoError(t, store.Put(ctx, positive(`App\User`, created)))
	got, err = store.Load(ctx, class)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsAbsent())
	assert.Equal(t, []string{"id"}, got.Hierarchy.Outermost().Base().Properties.Keys())
}

func TestStore_Load_Stale(t *testing.T) {
	created := time.Unix(500, 0)
	store := openStore(t, fixedModTime(created.Add(time.Second)))
	ctx := context.Background()
	class := &domain.Class{Name: domain.NewInternedString("A"), SourceFile: "/src/x.php"}

	require.NoError(t, store.Put(ctx, domain.NewAbsentEntry(class, created)))

	got, err := store.Load(ctx, class)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_EvictClear(t *testing.T) {
	store := openStore(t, fixedModTime(time.Unix(0, 0)))
	ctx := context.Background()
	a := &domain.Class{Name: domain.NewInternedString("A")}
	b := &domain.Class{Name: domain.NewInternedString("B")}

	require.NoError(t, store.Put(ctx, domain.NewAbsentEntry(a, time.Unix(1, 0))))
	require.NoError(t, store.Put(ctx, domain.NewAbsentEntry(b, time.Unix(1, 0))))

	require.NoError(t, store.Evict(ctx, a.Name))
	got, err := store.Load(ctx, a)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Load(ctx, b)
	require.NoError(t, err)
	assert.NotNil(t, got)

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx, b)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.DatabaseFileName)
	ctx := context.Background()
	class := &domain.Class{Name: domain.NewInternedString("A")}

	store, err := sqlitecache.Open(ctx, path, codec.New(false), fixedModTime(time.Unix(0, 0)))
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, domain.NewAbsentEntry(class, time.Unix(1, 0))))
	require.NoError(t, store.Close())

	store, err = sqlitecache.Open(ctx, path, codec.New(false), fixedModTime(time.Unix(0, 0)))
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())

	got, err := store.Load(ctx, class)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
