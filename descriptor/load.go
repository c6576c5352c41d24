package descriptor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/i18n"
)

// Encoding selects the serialized form of a descriptor.
type Encoding string

const (
	JSON Encoding = "json"
	YAML Encoding = "yaml"
)

// EncodingFor picks the encoding from a file extension. Unknown extensions
// fall back to JSON.
func EncodingFor(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Decode parses data in the given encoding.
func Decode(data []byte, enc Encoding) (*Descriptor, error) {
	var d Descriptor
	switch enc {
	case YAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, parseIssue(err)
		}
		if dup := checkDuplicateKeys(&root); dup != nil {
			it := ts.Root().Issue(ts.CodeDuplicateKey,
				i18n.T(ts.CodeDuplicateKey, map[string]string{"key": dup.Key}), "key", dup.Key, "line", dup.Line)
			it.Cause = dup
			return nil, ts.Issues{it}
		}
		if err := root.Decode(&d); err != nil {
			return nil, parseIssue(err)
		}
	default:
		iss, err := duplicateKeys(data)
		if err != nil {
			return nil, parseIssue(err)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		if err := gojson.Unmarshal(data, &d); err != nil {
			return nil, parseIssue(err)
		}
	}
	return &d, nil
}

// Parse decodes data and builds the schema.
func Parse(data []byte, enc Encoding) (*ts.Schema, error) {
	d, err := Decode(data, enc)
	if err != nil {
		return nil, err
	}
	return d.Schema()
}

// Load reads the descriptor file at path, choosing the encoding from its
// extension.
func Load(path string) (*ts.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	return Parse(data, EncodingFor(path))
}

// Marshal writes the descriptor of s in the given encoding.
func Marshal(s *ts.Schema, enc Encoding) ([]byte, error) {
	d := FromSchema(s)
	if enc == YAML {
		var buf bytes.Buffer
		e := yaml.NewEncoder(&buf)
		e.SetIndent(2)
		if err := e.Encode(d); err != nil {
			return nil, err
		}
		if err := e.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return gojson.MarshalIndent(d, "", "  ")
}

func parseIssue(err error) ts.Issues {
	it := ts.Root().Issue(ts.CodeParseError, i18n.T(ts.CodeParseError, nil))
	it.Cause = err
	return ts.Issues{it}
}

// DuplicateKeyError reports a mapping key declared twice, with both positions.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// checkDuplicateKeys reports the first repeated mapping key in the tree.
func checkDuplicateKeys(n *yaml.Node) *DuplicateKeyError {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if dup := checkDuplicateKeys(c); dup != nil {
				return dup
			}
		}
	case yaml.MappingNode:
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if pos, dup := first[k.Value]; dup {
				return &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			if dup := checkDuplicateKeys(n.Content[i+1]); dup != nil {
				return dup
			}
		}
	}
	return nil
}
