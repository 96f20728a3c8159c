package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/classmeta/internal/adapters/driver"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/classmeta/internal/engine/factory"
	"go.trai.ch/zerr"
)

// Watch evicts cached metadata as soon as the files it was built from change.
// It watches the catalog, the metadata directories and the source files of
// the classes in the catalog loaded at start. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, opts Options) error {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.closeSession(s)

	if s.cache == nil {
		return zerr.Wrap(domain.ErrCacheDisabled, "watch metadata sources")
	}

	paths := append([]string{s.cfg.CatalogPath}, s.cfg.MetadataDirs...)
	paths = append(paths, sourceFiles(s.resolver)...)
	if err := a.watcher.Start(ctx, paths...); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info(fmt.Sprintf("watching %d paths for metadata changes", len(paths)))

	w := &invalidator{
		app:      a,
		session:  s,
		locator:  driver.NewFileLocator(s.cfg.MetadataDirs, s.cfg.Formats),
		catalog:  s.cfg.CatalogPath,
		resolver: s.resolver,
	}
	for event := range a.watcher.Events() {
		w.handle(ctx, event)
	}
	return nil
}

// sourceFiles returns the distinct class source files of resolver, sorted.
func sourceFiles(resolver ports.ClassResolver) []string {
	var files []string
	for _, c := range resolver.Classes() {
		if c.SourceFile != "" {
			files = append(files, filepath.Clean(c.SourceFile))
		}
	}
	slices.Sort(files)
	return slices.Compact(files)
}

// invalidator maps changed files to the cache entries depending on them.
type invalidator struct {
	app      *App
	session  *session
	locator  *driver.FileLocator
	catalog  string
	resolver ports.ClassResolver
}

func (w *invalidator) handle(ctx context.Context, event ports.WatchEvent) {
	w.app.logger.Debug(fmt.Sprintf("%s %s", event.Operation, event.Path))

	if filepath.Clean(event.Path) == filepath.Clean(w.catalog) {
		w.reloadCatalog(ctx)
		return
	}

	path := filepath.Clean(event.Path)
	changed := make(map[domain.InternedString]bool)
	if name, ok := w.locator.ClassForPath(path); ok {
		changed[domain.NewInternedString(name)] = true
	}
	for _, c := range w.resolver.Classes() {
		if c.SourceFile != "" && filepath.Clean(c.SourceFile) == path {
			changed[c.Name] = true
		}
	}
	if len(changed) == 0 {
		return
	}

	w.evict(ctx, w.dependents(changed))
}

// dependents returns every catalog class whose hierarchy contains a changed class.
func (w *invalidator) dependents(changed map[domain.InternedString]bool) []domain.InternedString {
	var res []domain.InternedString
	for _, c := range w.resolver.Classes() {
		classes, err := factory.ClassHierarchy(w.resolver, c.Name.String(), w.session.cfg.IncludeInterfaces)
		if err != nil {
			continue
		}
		if slices.ContainsFunc(classes, func(h *domain.Class) bool { return changed[h.Name] }) {
			res = append(res, c.Name)
		}
	}
	return res
}

// reloadCatalog swaps in the new catalog and evicts every class of both versions.
// A catalog that fails to load is reported and the previous one stays active.
func (w *invalidator) reloadCatalog(ctx context.Context) {
	resolver, err := w.app.catalogLoader.Load(w.catalog)
	if err != nil {
		w.app.logger.Warn("class catalog changed but could not be loaded, keeping the previous catalog")
		w.app.logger.Error(err)
		return
	}

	seen := make(map[domain.InternedString]bool)
	var names []domain.InternedString
	for _, r := range []ports.ClassResolver{w.resolver, resolver} {
		for _, c := range r.Classes() {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}
	w.resolver = resolver
	w.app.logger.Info("class catalog reloaded")
	w.evict(ctx, names)
}

func (w *invalidator) evict(ctx context.Context, names []domain.InternedString) {
	for _, name := range names {
		if err := w.session.cache.Evict(ctx, name); err != nil {
			w.app.logger.Warn(fmt.Sprintf("failed to evict %s", name))
			w.app.logger.Error(err)
			continue
		}
		w.app.logger.Info(fmt.Sprintf("evicted %s", name))
	}
}
