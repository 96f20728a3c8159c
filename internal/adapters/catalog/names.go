package catalog

import (
	"regexp"

	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

// Namespaced identifiers separated by backslashes, e.g. App\Model\User.
var validClassNameRegex = regexp.MustCompile(`^\\?[A-Za-z_][A-Za-z0-9_]*(\\[A-Za-z_][A-Za-z0-9_]*)*$`)

func validateName(name string) error {
	if name == "" {
		return zerr.Wrap(domain.ErrInvalidClassName, "empty name")
	}
	if !validClassNameRegex.MatchString(name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidClassName, "malformed name"), "class", name)
	}
	return nil
}

// normalizeName strips the optional leading namespace separator.
func normalizeName(name string) string {
	if len(name) > 0 && name[0] == '\\' {
		return name[1:]
	}
	return name
}
