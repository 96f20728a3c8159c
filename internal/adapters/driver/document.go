package driver

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Document is the decoded content of one metadata file.
type Document struct {
	// Class overrides the class name the metadata is recorded under.
	Class      string      `yaml:"class" toml:"class" json:"class"`
	Mergeable  *bool       `yaml:"mergeable" toml:"mergeable" json:"mergeable"`
	Properties []MemberDTO `yaml:"properties" toml:"properties" json:"properties"`
	Methods    []MemberDTO `yaml:"methods" toml:"methods" json:"methods"`
}

// MemberDTO describes a property or method entry.
type MemberDTO struct {
	Name       string         `yaml:"name" toml:"name" json:"name"`
	Attributes map[string]any `yaml:"attributes" toml:"attributes" json:"attributes"`
}

// Decode parses data in the given format.
func Decode(data []byte, format domain.Format) (*Document, error) {
	var doc Document
	var err error

	switch format {
	case domain.FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case domain.FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case domain.FormatJSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &doc)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "decode metadata"), "format", string(format))
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetadataParseFailed.Error())
	}

	for i, m := range doc.Properties {
		if m.Name == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrMetadataParseFailed, "property without name"), "index", i)
		}
	}
	for i, m := range doc.Methods {
		if m.Name == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrMetadataParseFailed, "method without name"), "index", i)
		}
	}

	return &doc, nil
}

// Build turns the document into metadata for the named class.
func (d *Document) Build(class string) domain.Metadata {
	name := class
	if d.Class != "" {
		name = d.Class
	}

	base := domain.NewClassMetadata(name)
	for _, p := range d.Properties {
		base.AddProperty(&domain.PropertyMetadata{
			Class:      base.Name(),
			Name:       p.Name,
			Attributes: stringify(p.Attributes),
		})
	}
	for _, m := range d.Methods {
		base.AddMethod(&domain.MethodMetadata{
			Class:      base.Name(),
			Name:       m.Name,
			Attributes: stringify(m.Attributes),
		})
	}

	if d.Mergeable != nil && !*d.Mergeable {
		return base
	}
	return &domain.MergeableClassMetadata{ClassMetadata: base}
}

func stringify(attrs map[string]any) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = fmt.Sprint(v)
	}
	return out
}
