package tableschema

import (
	"errors"
	"net/url"
	"strings"
)

// Default boolean literals. Each Field receives its own copy.
var (
	defaultTrueValues  = []string{"true", "True", "TRUE", "1"}
	defaultFalseValues = []string{"false", "False", "FALSE", "0"}
)

// Internal cast failures. Both collapse to "no value" at the public API.
var (
	errUnavailable = errors.New("tableschema: cast unavailable for type/format")
	errBadCast     = errors.New("tableschema: malformed value")
)

// Field describes one column: its type/format rules and the literals used
// when casting booleans and integers.
//
// A Field is ordinary mutable configuration. It may be read concurrently only
// while nobody mutates it.
type Field struct {
	Name        string
	Title       string
	Description string
	Type        FieldType
	Format      Format
	RDFType     *url.URL
	Constraints Constraints

	TrueValues  []string
	FalseValues []string
	// BareNumber=false lets integer casts strip surrounding non-digit noise.
	BareNumber bool
}

// NewField returns a field with default format and boolean literals.
func NewField(name string, typ FieldType) *Field {
	return &Field{
		Name:        name,
		Type:        typ,
		TrueValues:  append([]string(nil), defaultTrueValues...),
		FalseValues: append([]string(nil), defaultFalseValues...),
		BareNumber:  true,
	}
}

// UniqueName is the lowercased name used for matching and equality.
func (f *Field) UniqueName() string { return strings.ToLower(f.Name) }

// Equal reports whether two fields share the same unique name.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.UniqueName() == other.UniqueName()
}

// Text returns a pointer to s, for building physical values inline.
func Text(s string) *string { return &s }

// Cast converts a physical value into its logical representation. It returns
// nil when text is nil, malformed, or the type/format is not castable.
func (f *Field) Cast(text *string) any {
	v, err := f.cast(text)
	if err != nil {
		return nil
	}
	return v
}

// Test reports whether Cast would succeed. A nil text always succeeds.
func (f *Field) Test(text *string) bool {
	_, err := f.cast(text)
	return err == nil
}

// ReverseCast converts a logical value into its physical text. It returns nil
// for nil values, values of the wrong Go type, and unimplemented type/formats.
func (f *Field) ReverseCast(value any) *string {
	s, err := f.reverseCast(value)
	if err != nil {
		return nil
	}
	return s
}

// ReverseTest reports whether ReverseCast would succeed. A nil value always succeeds.
func (f *Field) ReverseTest(value any) bool {
	_, err := f.reverseCast(value)
	return err == nil
}

// Fields is an ordered list of fields.
type Fields []*Field

// Unique returns the set of unique names.
func (fs Fields) Unique() map[string]struct{} {
	set := make(map[string]struct{}, len(fs))
	for _, f := range fs {
		set[f.UniqueName()] = struct{}{}
	}
	return set
}

// UniqueByName maps each unique name to its first-declared field.
func (fs Fields) UniqueByName() map[string]*Field {
	out := make(map[string]*Field, len(fs))
	for _, f := range fs {
		un := f.UniqueName()
		if _, ok := out[un]; !ok {
			out[un] = f
		}
	}
	return out
}

// GroupByName groups fields by their exact (case-sensitive) name.
func (fs Fields) GroupByName() map[string][]*Field {
	out := make(map[string][]*Field, len(fs))
	for _, f := range fs {
		out[f.Name] = append(out[f.Name], f)
	}
	return out
}

// Lookup returns the first-declared field whose unique name matches name.
func (fs Fields) Lookup(name string) (*Field, bool) {
	un := strings.ToLower(name)
	for _, f := range fs {
		if f.UniqueName() == un {
			return f, true
		}
	}
	return nil, false
}
