// Package app implements the application layer for classmeta.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/classmeta/internal/adapters/detector"
	"go.trai.ch/classmeta/internal/adapters/report"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/classmeta/internal/engine/factory"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	catalogLoader ports.CatalogLoader
	driverBuilder ports.DriverBuilder
	cacheOpener   ports.CacheOpener
	watcher       ports.Watcher
	tracer        ports.Tracer
	logger        ports.Logger
	autoMode      detector.OutputMode
	stdout        io.Writer
	workers       int
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	catalogLoader ports.CatalogLoader,
	driverBuilder ports.DriverBuilder,
	cacheOpener ports.CacheOpener,
	watcher ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		catalogLoader: catalogLoader,
		driverBuilder: driverBuilder,
		cacheOpener:   cacheOpener,
		watcher:       watcher,
		tracer:        tracer,
		logger:        log,
		autoMode:      detector.ModeAuto,
		stdout:        os.Stdout,
		workers:       runtime.NumCPU(),
	}
}

// WithStdout redirects reports to w.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithOutputMode sets the mode used when a command does not ask for one.
func (a *App) WithOutputMode(mode detector.OutputMode) *App {
	a.autoMode = mode
	return a
}

// WithWorkers bounds the number of classes resolved concurrently by Warm.
func (a *App) WithWorkers(n int) *App {
	if n > 0 {
		a.workers = n
	}
	return a
}

// Options are the per-invocation overrides of the project configuration.
type Options struct {
	// Debug keeps absent results out of the persistent cache.
	Debug bool
	// IncludeInterfaces overrides includeInterfaces when set.
	IncludeInterfaces *bool
	// Container overrides the configured container when not empty.
	Container string
	// NoCache bypasses the persistent cache.
	NoCache bool
	// OutputMode is one of auto, styled, plain, text or json.
	OutputMode string
}

// session is everything one command needs to resolve metadata.
type session struct {
	cfg      *domain.Config
	resolver ports.ClassResolver
	provider *factory.Provider
	cache    ports.ClearableCache
	close    func() error
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	cfg.Debug = cfg.Debug || opts.Debug
	if opts.IncludeInterfaces != nil {
		cfg.IncludeInterfaces = *opts.IncludeInterfaces
	}
	if opts.Container != "" {
		kind, err := domain.ParseContainerKind(opts.Container)
		if err != nil {
			return nil, err
		}
		cfg.Container = kind
	}
	if opts.NoCache {
		cfg.Cache.Backend = domain.CacheNone
	}
	return cfg, nil
}

func (a *App) openCache(ctx context.Context, cfg *domain.Config) (ports.ClearableCache, func() error, error) {
	cache, closeFn, err := a.cacheOpener.Open(ctx, cfg)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to open metadata cache")
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return cache, closeFn, nil
}

func (a *App) open(ctx context.Context, opts Options) (*session, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	resolver, err := a.catalogLoader.Load(cfg.CatalogPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load class catalog")
	}

	drv, err := a.driverBuilder.Build(cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build metadata driver")
	}

	cache, closeFn, err := a.openCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	factoryOpts := []factory.Option{
		factory.WithContainer(cfg.Container),
		factory.WithIncludeInterfaces(cfg.IncludeInterfaces),
		factory.WithDebug(cfg.Debug),
		factory.WithLogger(a.logger),
		factory.WithTracer(a.tracer),
	}
	if cache != nil {
		factoryOpts = append(factoryOpts, factory.WithCache(cache))
	}

	return &session{
		cfg:      cfg,
		resolver: resolver,
		provider: factory.NewProvider(drv, resolver, factoryOpts...),
		cache:    cache,
		close:    closeFn,
	}, nil
}

func (a *App) closeSession(s *session) {
	if err := s.close(); err != nil {
		a.logger.Warn("failed to close metadata cache")
		a.logger.Error(err)
	}
}

func (a *App) renderer(mode string) *report.Renderer {
	return report.NewRenderer(a.stdout, detector.ResolveMode(a.autoMode, mode))
}

// Inspect resolves the metadata hierarchy of class and renders it.
func (a *App) Inspect(ctx context.Context, class string, opts Options) error {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.closeSession(s)

	h, err := s.provider.New().GetMetadataForClass(ctx, class)
	if err != nil {
		return err
	}
	return a.renderer(opts.OutputMode).RenderHierarchy(class, h)
}

// List renders every class name the metadata drivers know about.
func (a *App) List(ctx context.Context, opts Options) error {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.closeSession(s)

	names, err := s.provider.New().AllClassNames(ctx)
	if err != nil {
		return err
	}
	return a.renderer(opts.OutputMode).RenderClassList(names)
}

// Warm resolves every known class to fill the persistent cache.
// Each worker owns one factory. A class that fails is reported and does not
// stop the others.
func (a *App) Warm(ctx context.Context, opts Options) (domain.WarmStats, error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return domain.WarmStats{}, err
	}
	defer a.closeSession(s)

	if s.cache == nil {
		a.logger.Warn("metadata cache is disabled, warm-up only checks that every class resolves")
	}

	names, err := s.provider.New().AllClassNames(ctx)
	if err != nil {
		return domain.WarmStats{}, err
	}

	stats := domain.WarmStats{Classes: len(names)}
	var mu sync.Mutex

	jobs := make(chan string)
	g, gctx := errgroup.WithContext(ctx)
	for range min(a.workers, max(len(names), 1)) {
		g.Go(func() error {
			f := s.provider.New()
			for name := range jobs {
				h, err := f.GetMetadataForClass(gctx, name)

				mu.Lock()
				switch {
				case err != nil:
					stats.Failed = append(stats.Failed, name)
				case h == nil:
					stats.Absent++
				default:
					stats.Resolved++
				}
				mu.Unlock()

				if err != nil {
					a.logger.Warn(fmt.Sprintf("failed to resolve %s", name))
					a.logger.Error(err)
				}
			}
			return nil
		})
	}

feed:
	for _, name := range names {
		select {
		case jobs <- name:
		case <-gctx.Done():
			break feed
		}
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	slices.Sort(stats.Failed)
	if err := a.renderer(opts.OutputMode).RenderWarm(stats); err != nil {
		return stats, err
	}
	if len(stats.Failed) > 0 {
		return stats, zerr.With(zerr.Wrap(domain.ErrWarmFailed, "warm metadata cache"), "failed", len(stats.Failed))
	}
	return stats, nil
}

// Evict removes the cached metadata of classes.
func (a *App) Evict(ctx context.Context, classes []string, opts Options) error {
	if len(classes) == 0 {
		return domain.ErrNoClassesSpecified
	}

	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	cache, closeFn, err := a.openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.closeSession(&session{close: closeFn})

	if cache == nil {
		return zerr.Wrap(domain.ErrCacheDisabled, "evict metadata")
	}

	var errs error
	evicted := make([]string, 0, len(classes))
	for _, class := range classes {
		if err := cache.Evict(ctx, domain.NewInternedString(class)); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		evicted = append(evicted, class)
	}

	if err := a.renderer(opts.OutputMode).RenderEvicted(evicted); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

// Clean removes every entry of the configured persistent cache.
func (a *App) Clean(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	cache, closeFn, err := a.openCache(ctx, cfg)
	if err != nil {
		return err
	}

	var errs error
	if cache == nil {
		a.logger.Info("metadata cache is disabled, nothing to clean")
	} else {
		a.logger.Info(fmt.Sprintf("removing %s metadata cache...", cfg.Cache.Backend))
		if err := cache.Clear(ctx); err != nil {
			errs = errors.Join(errs, domain.ErrFailedToCleanCache, err)
		} else {
			a.logger.Info(fmt.Sprintf("removed %s metadata cache", cfg.Cache.Backend))
		}
	}

	if err := closeFn(); err != nil {
		errs = errors.Join(errs, zerr.Wrap(err, "failed to close metadata cache"))
	}
	return errs
}
