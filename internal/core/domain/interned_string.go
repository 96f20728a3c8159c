package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Class names repeat across catalogs, hierarchies and cache entries, so they are interned
// and compared by handle.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// NewInternedStrings creates a new InternedString slice from a string slice.
func NewInternedStrings(s []string) []InternedString {
	res := make([]InternedString, len(s))
	for i, s := range s {
		res[i] = NewInternedString(s)
	}
	return res
}

// IsZero reports whether the value was never assigned.
func (is InternedString) IsZero() bool {
	return is.h == unique.Handle[string]{}
}

// String returns the underlying string value, or "" for the zero value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Empty text leaves the zero value.
func (is *InternedString) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*is = InternedString{}
		return nil
	}
	is.h = unique.Make(string(text))
	return nil
}

// Strings converts interned names back to plain strings.
func Strings(names []InternedString) []string {
	res := make([]string, len(names))
	for i, n := range names {
		res[i] = n.String()
	}
	return res
}
