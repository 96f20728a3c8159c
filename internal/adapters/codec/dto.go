package codec

// formatVersion changes whenever the encoded layout changes.
// Entries with a different version decode as errors and are treated as misses.
const formatVersion = 2

type entryDTO struct {
	Version   int        `cbor:"v"`
	Class     string     `cbor:"class"`
	Absent    bool       `cbor:"absent"`
	Container string     `cbor:"container,omitempty"`
	Levels    []levelDTO `cbor:"levels,omitempty"`
	Resources []string   `cbor:"resources,omitempty"`
	CreatedAt int64      `cbor:"created_at"`
	Options   optionsDTO `cbor:"opts"`
}

type optionsDTO struct {
	Container  string `cbor:"container"`
	Interfaces bool   `cbor:"interfaces"`
}

type levelDTO struct {
	Name       string      `cbor:"name"`
	Mergeable  bool        `cbor:"mergeable"`
	Properties []memberDTO `cbor:"properties,omitempty"`
	Methods    []memberDTO `cbor:"methods,omitempty"`
	Resources  []string    `cbor:"resources,omitempty"`
	CreatedAt  int64       `cbor:"created_at"`
}

type memberDTO struct {
	Name       string            `cbor:"name"`
	Attributes map[string]string `cbor:"attrs,omitempty"`
}
