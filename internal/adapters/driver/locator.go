package driver

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

var classPathReplacer = strings.NewReplacer(`\`, "/", ".", "/")

// FileLocator maps class names to metadata files below a set of search directories.
type FileLocator struct {
	dirs    []string
	formats []domain.Format
}

// NewFileLocator creates a locator searching dirs in order, trying formats in order.
func NewFileLocator(dirs []string, formats []domain.Format) *FileLocator {
	return &FileLocator{
		dirs:    slices.Clone(dirs),
		formats: slices.Clone(formats),
	}
}

// Dirs returns the search directories.
func (l *FileLocator) Dirs() []string {
	return slices.Clone(l.dirs)
}

// Locate returns the first metadata file for name and its format.
func (l *FileLocator) Locate(name string) (string, domain.Format, bool) {
	rel := filepath.FromSlash(classPathReplacer.Replace(name))
	for _, dir := range l.dirs {
		for _, format := range l.formats {
			for _, ext := range format.Extensions() {
				candidate := filepath.Join(dir, rel+ext)
				if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
					return candidate, format, true
				}
			}
		}
	}
	return "", "", false
}

// ClassForPath returns the class whose metadata file is path, if path lies
// below a search directory and carries an extension of a configured format.
func (l *FileLocator) ClassForPath(path string) (string, bool) {
	exts := l.extensions()
	ext := filepath.Ext(path)
	if !exts[ext] {
		return "", false
	}
	for _, dir := range l.dirs {
		rel, err := filepath.Rel(dir, strings.TrimSuffix(path, ext))
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return classNameFromRel(rel), true
	}
	return "", false
}

func (l *FileLocator) extensions() map[string]bool {
	exts := make(map[string]bool)
	for _, format := range l.formats {
		for _, ext := range format.Extensions() {
			exts[ext] = true
		}
	}
	return exts
}

func classNameFromRel(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
}

// FindAllClasses returns the class name of every metadata file, sorted and without duplicates.
// Directories that do not exist are skipped.
func (l *FileLocator) FindAllClasses() ([]string, error) {
	exts := l.extensions()

	var names []string
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		for path, err := range walkFiles(dir) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrMetadataScanFailed.Error()), "dir", dir)
			}
			ext := filepath.Ext(path)
			if !exts[ext] {
				continue
			}
			rel, err := filepath.Rel(dir, strings.TrimSuffix(path, ext))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrMetadataScanFailed.Error()), "path", path)
			}
			names = append(names, classNameFromRel(rel))
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// walkFiles yields every regular file below root, skipping hidden directories.
func walkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				return nil
			}

			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
