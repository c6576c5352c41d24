// Package descriptor reads and writes Table Schema descriptors in JSON and
// YAML and converts them to and from *tableschema.Schema.
//
// Loading reports problems as tableschema.Issues with JSON Pointer paths into
// the descriptor (for example /fields/2/type).
package descriptor

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Descriptor is the serialized form of a schema.
type Descriptor struct {
	Fields        []Field      `json:"fields" yaml:"fields"`
	MissingValues []string     `json:"missingValues,omitempty" yaml:"missingValues,omitempty"`
	PrimaryKey    KeyList      `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	ForeignKeys   []ForeignKey `json:"foreignKeys,omitempty" yaml:"foreignKeys,omitempty"`
}

// Field is the serialized form of a field. TrueValues and FalseValues are
// pointers so that an explicitly empty list survives a round trip.
type Field struct {
	Name        string       `json:"name" yaml:"name"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string       `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string       `json:"format,omitempty" yaml:"format,omitempty"`
	RDFType     string       `json:"rdfType,omitempty" yaml:"rdfType,omitempty"`
	TrueValues  *[]string    `json:"trueValues,omitempty" yaml:"trueValues,omitempty"`
	FalseValues *[]string    `json:"falseValues,omitempty" yaml:"falseValues,omitempty"`
	BareNumber  *bool        `json:"bareNumber,omitempty" yaml:"bareNumber,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// Constraints mirrors tableschema.Constraints.
type Constraints struct {
	Required  *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	Unique    *bool  `json:"unique,omitempty" yaml:"unique,omitempty"`
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum   any    `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum   any    `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum      []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// ForeignKey is the serialized form of a foreign key.
type ForeignKey struct {
	Fields    KeyList   `json:"fields" yaml:"fields"`
	Reference Reference `json:"reference" yaml:"reference"`
}

// Reference is the serialized form of a foreign key reference. An empty
// resource refers to the same schema.
type Reference struct {
	Resource string  `json:"resource" yaml:"resource"`
	Fields   KeyList `json:"fields" yaml:"fields"`
}

// KeyList is a list of field names written either as a single string or as a
// list of strings. A single name is written back as a string.
type KeyList []string

func (k *KeyList) UnmarshalJSON(b []byte) error {
	var one string
	if err := gojson.Unmarshal(b, &one); err == nil {
		*k = KeyList{one}
		return nil
	}
	var many []string
	if err := gojson.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("key list must be a string or a list of strings")
	}
	*k = many
	return nil
}

func (k KeyList) MarshalJSON() ([]byte, error) {
	if len(k) == 1 {
		return gojson.Marshal(k[0])
	}
	return gojson.Marshal([]string(k))
}

func (k *KeyList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*k = KeyList{n.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := n.Decode(&many); err != nil {
			return err
		}
		*k = many
		return nil
	}
	return fmt.Errorf("line %d: key list must be a string or a list of strings", n.Line)
}

func (k KeyList) MarshalYAML() (any, error) {
	if len(k) == 1 {
		return k[0], nil
	}
	return []string(k), nil
}
