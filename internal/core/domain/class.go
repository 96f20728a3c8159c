package domain

// ClassKind distinguishes concrete classes from interfaces in the catalog.
type ClassKind uint8

const (
	// KindClass is a regular class that may extend one parent.
	KindClass ClassKind = iota
	// KindInterface is an interface that may extend other interfaces.
	KindInterface
)

// String returns the catalog spelling of the kind.
func (k ClassKind) String() string {
	if k == KindInterface {
		return "interface"
	}
	return "class"
}

// Class identifies a loadable class and its direct relationships.
type Class struct {
	// Name is the fully qualified class name.
	Name InternedString
	// Kind tells classes and interfaces apart.
	Kind ClassKind
	// Parent is the class this one extends. Zero when the class is a root.
	Parent InternedString
	// Interfaces lists the interfaces implemented directly by a class,
	// or the interfaces extended by an interface.
	Interfaces []InternedString
	// SourceFile is the absolute path of the file that declares the class.
	SourceFile string
}

// HasParent reports whether the class extends another class.
func (c *Class) HasParent() bool {
	return !c.Parent.IsZero()
}

// IsInterface reports whether the class is an interface.
func (c *Class) IsInterface() bool {
	return c.Kind == KindInterface
}
