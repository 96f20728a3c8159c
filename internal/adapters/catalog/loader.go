package catalog

import (
	"os"
	"path/filepath"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.CatalogLoader reading a YAML catalog.
type Loader struct{}

// NewLoader creates a new catalog Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and validates the catalog at path.
// Relative source paths are resolved against the catalog directory.
func (l *Loader) Load(path string) (ports.ClassResolver, error) {
	// #nosec G304 -- path comes from the project configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "path", path)
	}

	classes, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return New(classes...)
}

// Parse decodes catalog YAML into class descriptors rooted at baseDir.
func Parse(data []byte, baseDir string) ([]*domain.Class, error) {
	var file Catalogfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogParseFailed.Error())
	}

	classes := make([]*domain.Class, 0, len(file.Classes))
	for i, dto := range file.Classes {
		if dto == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidClassName, "empty entry"), "index", i)
		}
		class, err := buildClass(dto, baseDir)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		classes = append(classes, class)
	}
	return classes, nil
}

func buildClass(dto *ClassDTO, baseDir string) (*domain.Class, error) {
	class := &domain.Class{
		Name:       domain.NewInternedString(normalizeName(dto.Name)),
		Interfaces: make([]domain.InternedString, 0, len(dto.Implements)),
	}
	if dto.Extends != "" {
		if err := validateName(dto.Extends); err != nil {
			return nil, err
		}
		class.Parent = domain.NewInternedString(normalizeName(dto.Extends))
	}

	switch dto.Kind {
	case "", "class":
		class.Kind = domain.KindClass
	case "interface":
		class.Kind = domain.KindInterface
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrCatalogParseFailed, "unknown kind"), "kind", dto.Kind)
	}

	for _, iface := range dto.Implements {
		if err := validateName(iface); err != nil {
			return nil, err
		}
		class.Interfaces = append(class.Interfaces, domain.NewInternedString(normalizeName(iface)))
	}

	if dto.Source != "" {
		if filepath.IsAbs(dto.Source) {
			class.SourceFile = filepath.Clean(dto.Source)
		} else {
			class.SourceFile = filepath.Join(baseDir, dto.Source)
		}
	}

	return class, nil
}
