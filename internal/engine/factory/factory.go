// Package factory resolves class hierarchy metadata through a driver and a two-tier cache.
package factory

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// Lookup sources reported on spans.
const (
	SourceMemory = "memory"
	SourceCache  = "cache"
	SourceDriver = "driver"
)

// Option configures a Factory.
type Option func(*Factory)

// WithContainer selects the hierarchy container to assemble.
func WithContainer(kind domain.ContainerKind) Option {
	return func(f *Factory) { f.container = kind }
}

// WithIncludeInterfaces enables interface traversal.
func WithIncludeInterfaces(include bool) Option {
	return func(f *Factory) { f.includeInterfaces = include }
}

// WithDebug stops absent results from reaching the persistent cache.
func WithDebug(debug bool) Option {
	return func(f *Factory) { f.debug = debug }
}

// WithCache attaches the persistent cache tier.
func WithCache(cache ports.MetadataCache) Option {
	return func(f *Factory) { f.cache = cache }
}

// WithLogger sets the logger used for cache failures and driver warnings.
func WithLogger(logger ports.Logger) Option {
	return func(f *Factory) { f.logger = logger }
}

// WithTracer sets the tracer used for lookup spans.
func WithTracer(tracer ports.Tracer) Option {
	return func(f *Factory) { f.tracer = tracer }
}

// WithClock overrides the time source for cache entries.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// Factory resolves the metadata hierarchy of classes.
//
// A Factory keeps every result in memory for its lifetime, absent results
// included. It is not safe for concurrent use; create one per scope through a
// Provider and share the persistent cache instead.
type Factory struct {
	driver   ports.Driver
	resolver ports.ClassResolver
	cache    ports.MetadataCache
	logger   ports.Logger
	tracer   ports.Tracer
	now      func() time.Time

	container         domain.ContainerKind
	includeInterfaces bool
	debug             bool

	loaded map[domain.InternedString]domain.Hierarchy
}

// New creates a Factory reading metadata from driver and class descriptors from resolver.
func New(driver ports.Driver, resolver ports.ClassResolver, opts ...Option) *Factory {
	f := &Factory{
		driver:    driver,
		resolver:  resolver,
		container: domain.ContainerPlain,
		now:       time.Now,
		loaded:    make(map[domain.InternedString]domain.Hierarchy),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = nopLogger{}
	}
	if f.tracer == nil {
		f.tracer = nopTracer{}
	}
	return f
}

// SetCache replaces the persistent cache tier. A nil cache disables it.
func (f *Factory) SetCache(cache ports.MetadataCache) {
	f.cache = cache
}

// SetIncludeInterfaces toggles interface traversal for subsequent lookups.
// Results already held in memory are not recomputed.
func (f *Factory) SetIncludeInterfaces(include bool) {
	f.includeInterfaces = include
}

// GetMetadataForClass returns the metadata hierarchy of the named class.
// It returns nil, nil when no level of the hierarchy has metadata.
func (f *Factory) GetMetadataForClass(ctx context.Context, name string) (domain.Hierarchy, error) {
	key := domain.NewInternedString(name)
	if h, ok := f.loaded[key]; ok {
		return h, nil
	}

	ctx, span := f.tracer.Start(ctx, "metadata.lookup", ports.WithAttribute("class", name))
	defer span.End()

	h, source, err := f.lookup(ctx, name)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("source", source)
	span.SetAttribute("absent", h == nil)
	if h != nil {
		span.SetAttribute("levels", h.Len())
	}

	f.loaded[key] = h
	return h, nil
}

func (f *Factory) lookup(ctx context.Context, name string) (domain.Hierarchy, string, error) {
	class, err := resolve(f.resolver, name)
	if err != nil {
		return nil, "", err
	}

	if entry := f.loadFromCache(ctx, class); entry != nil {
		return entry.Hierarchy, SourceCache, nil
	}

	classes, err := ClassHierarchy(f.resolver, name, f.includeInterfaces)
	if err != nil {
		return nil, "", err
	}

	h, err := f.assemble(ctx, class, classes)
	if err != nil {
		return nil, "", err
	}

	f.storeInCache(ctx, class, classes, h)
	return h, SourceDriver, nil
}

func (f *Factory) loadFromCache(ctx context.Context, class *domain.Class) *domain.CacheEntry {
	if f.cache == nil {
		return nil
	}
	entry, err := f.cache.Load(ctx, class)
	if err != nil {
		f.logger.Warn(fmt.Sprintf("metadata cache load failed for %s, resolving again", class.Name))
		f.logger.Error(err)
		return nil
	}
	if entry != nil && !entry.Matches(f.options()) {
		f.logger.Debug(fmt.Sprintf("cached metadata for %s was resolved with other settings, resolving again", class.Name))
		return nil
	}
	return entry
}

func (f *Factory) options() domain.LookupOptions {
	return domain.LookupOptions{Container: f.container, IncludeInterfaces: f.includeInterfaces}
}

func (f *Factory) storeInCache(ctx context.Context, class *domain.Class, classes []*domain.Class, h domain.Hierarchy) {
	if f.cache == nil {
		return
	}
	if h == nil && f.debug {
		f.logger.Debug(fmt.Sprintf("not caching absent metadata for %s in debug mode", class.Name))
		return
	}

	entry := domain.NewCacheEntry(class, h, f.now())
	entry.Options = f.options()
	for _, c := range classes {
		entry.AddResources(c.SourceFile)
	}
	if err := f.cache.Put(ctx, entry); err != nil {
		f.logger.Warn(fmt.Sprintf("metadata cache store failed for %s", class.Name))
		f.logger.Error(err)
	}
}

// assemble queries the driver once per class and builds the configured container
// named after the requested class.
func (f *Factory) assemble(ctx context.Context, class *domain.Class, classes []*domain.Class) (domain.Hierarchy, error) {
	levels := make([]domain.Metadata, 0, len(classes))
	for _, c := range classes {
		m, err := f.driver.LoadMetadataForClass(ctx, c)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "load class metadata"), "class", c.Name.String())
		}
		if m == nil {
			continue
		}
		if m.Name() != c.Name {
			f.logger.Warn(fmt.Sprintf("driver returned metadata for %s when asked for %s", m.Name(), c.Name))
		}
		levels = append(levels, m)
	}

	if len(levels) == 0 {
		return nil, nil
	}

	if f.container == domain.ContainerMergeable {
		if mergeable, ok := allMergeable(levels); ok {
			h := domain.NewMergeableHierarchyMetadata(class.Name.String())
			for _, m := range mergeable {
				if err := h.Add(m); err != nil {
					return nil, err
				}
			}
			return h, nil
		}
		f.logger.Debug(fmt.Sprintf("metadata of %s is not mergeable, using a plain container", class.Name))
	}

	h := domain.NewClassHierarchyMetadata(class.Name.String())
	for _, m := range levels {
		if err := h.Add(m); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func allMergeable(levels []domain.Metadata) ([]domain.Mergeable, bool) {
	res := make([]domain.Mergeable, 0, len(levels))
	for _, l := range levels {
		m, ok := l.(domain.Mergeable)
		if !ok {
			return nil, false
		}
		res = append(res, m)
	}
	return res, true
}

// AllClassNames returns every class name the driver has metadata for.
func (f *Factory) AllClassNames(ctx context.Context) ([]string, error) {
	advanced, ok := f.driver.(ports.AdvancedDriver)
	if !ok {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrUnsupportedCapability, "list class names"),
			"driver", fmt.Sprintf("%T", f.driver),
		)
	}
	return advanced.AllClassNames(ctx)
}
