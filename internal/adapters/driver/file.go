// Package driver provides metadata drivers reading per-class metadata files.
package driver

import (
	"context"
	"os"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileDriver loads class metadata from files found by a FileLocator.
type FileDriver struct {
	locator *FileLocator
}

// NewFileDriver creates a FileDriver backed by locator.
func NewFileDriver(locator *FileLocator) *FileDriver {
	return &FileDriver{locator: locator}
}

// LoadMetadataForClass reads the metadata file of class.
// It returns nil, nil when no file exists for the class.
func (d *FileDriver) LoadMetadataForClass(ctx context.Context, class *domain.Class) (domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := class.Name.String()
	path, format, ok := d.locator.Locate(name)
	if !ok {
		return nil, nil
	}

	// #nosec G304 -- path is derived from configured metadata directories
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMetadataReadFailed.Error()), "path", path)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	md := doc.Build(name)
	md.Base().AddFileResource(path)
	return md, nil
}

// AllClassNames returns every class that has a metadata file.
func (d *FileDriver) AllClassNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.locator.FindAllClasses()
}
