package catalog

// Catalogfile represents the structure of the classes.yaml catalog.
type Catalogfile struct {
	Version string      `yaml:"version"`
	Classes []*ClassDTO `yaml:"classes"`
}

// ClassDTO represents a single class or interface declaration.
type ClassDTO struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind"`
	Extends    string   `yaml:"extends"`
	Implements []string `yaml:"implements"`
	Source     string   `yaml:"source"`
}
