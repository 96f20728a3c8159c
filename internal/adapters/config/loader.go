// Package config provides the configuration loader for classmeta.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Load walks up from cwd looking for classmeta.yaml and resolves it into a domain.Config.
// When no file is found the defaults are rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, found := l.findConfiguration(cwd)
	if !found {
		return l.resolve(cwd, "", &Projectfile{})
	}

	var projectfile Projectfile
	if err := l.readAndUnmarshalYAML(configPath, &projectfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if projectfile.Version != "" && projectfile.Version != SupportedVersion {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, "check version"), "version", projectfile.Version)
		return nil, zerr.With(err, "path", configPath)
	}

	return l.resolve(filepath.Dir(configPath), configPath, &projectfile)
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) resolve(root, configPath string, pf *Projectfile) (*domain.Config, error) {
	cfg := &domain.Config{
		Root:              root,
		Path:              configPath,
		CatalogPath:       resolvePath(root, pf.Catalog, domain.CatalogFileName),
		IncludeInterfaces: pf.IncludeInterfaces == nil || *pf.IncludeInterfaces,
		Debug:             pf.Debug,
	}

	container, err := domain.ParseContainerKind(pf.Container)
	if err != nil {
		return nil, withPath(err, configPath)
	}
	cfg.Container = container

	cfg.MetadataDirs, err = l.resolveMetadataDirs(root, pf.Metadata)
	if err != nil {
		return nil, withPath(err, configPath)
	}

	cfg.Formats, err = resolveFormats(pf.Formats)
	if err != nil {
		return nil, withPath(err, configPath)
	}

	cfg.Cache, err = resolveCache(root, pf.Cache)
	if err != nil {
		return nil, withPath(err, configPath)
	}

	return cfg, nil
}

func (l *Loader) resolveMetadataDirs(root string, dirs []string) ([]string, error) {
	if len(dirs) == 0 {
		dirs = []string{domain.MetadataDirName}
	}

	resolved := make([]string, 0, len(dirs))
	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		abs := resolvePath(root, dir, "")
		if seen[abs] {
			continue
		}
		seen[abs] = true

		isDir, err := l.FS.IsDir(abs)
		switch {
		case err != nil:
			l.Logger.Warn(fmt.Sprintf("metadata directory %s does not exist", abs))
		case !isDir:
			return nil, zerr.With(zerr.Wrap(domain.ErrMetadataScanFailed, "not a directory"), "metadata_dir", abs)
		}
		resolved = append(resolved, abs)
	}
	return resolved, nil
}

func resolveFormats(names []string) ([]domain.Format, error) {
	if len(names) == 0 {
		return []domain.Format{domain.FormatYAML, domain.FormatTOML, domain.FormatJSON}, nil
	}

	formats := make([]domain.Format, 0, len(names))
	for _, name := range names {
		f, err := domain.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func resolveCache(root string, dto *CacheDTO) (domain.CacheConfig, error) {
	if dto == nil {
		dto = &CacheDTO{}
	}

	backend, err := domain.ParseCacheBackend(dto.Backend)
	if err != nil {
		return domain.CacheConfig{}, err
	}

	cache := domain.CacheConfig{
		Backend:  backend,
		Dir:      resolvePath(root, dto.Dir, domain.DefaultCachePath()),
		Compress: dto.Compress == nil || *dto.Compress,
		Redis: domain.RedisConfig{
			Addr:   "localhost:6379",
			Prefix: domain.DefaultRedisPrefix,
		},
		SQLite: domain.SQLiteConfig{
			Path: resolvePath(root, "", domain.DefaultDatabasePath()),
		},
	}

	if r := dto.Redis; r != nil {
		if r.Addr != "" {
			cache.Redis.Addr = r.Addr
		}
		if r.Prefix != "" {
			cache.Redis.Prefix = r.Prefix
		}
		cache.Redis.Password = r.Password
		cache.Redis.DB = r.DB
		if r.TTL != "" {
			ttl, parseErr := time.ParseDuration(r.TTL)
			if parseErr != nil {
				return domain.CacheConfig{}, zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "ttl", r.TTL)
			}
			cache.Redis.TTL = ttl
		}
	}

	if s := dto.SQLite; s != nil && s.Path != "" {
		cache.SQLite.Path = resolvePath(root, s.Path, "")
	}

	return cache, nil
}

// resolvePath returns p anchored at root, falling back to def when p is empty.
func resolvePath(root, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func withPath(err error, configPath string) error {
	if configPath == "" {
		return err
	}
	return zerr.With(err, "path", configPath)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Projectfile) error {
	configFile, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
