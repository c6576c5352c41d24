package tableschema

import (
	"fmt"
	"strings"
)

// FieldType enumerates the logical types a field can declare.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeInteger
	TypeBoolean
	TypeObject
	TypeArray
	TypeDate
	TypeTime
	TypeDateTime
	TypeYear
	TypeYearMonth
	TypeDuration
	TypeGeoPoint
	TypeGeoJSON
	TypeAny
)

var fieldTypeNames = [...]string{
	TypeString:    "string",
	TypeNumber:    "number",
	TypeInteger:   "integer",
	TypeBoolean:   "boolean",
	TypeObject:    "object",
	TypeArray:     "array",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeDateTime:  "datetime",
	TypeYear:      "year",
	TypeYearMonth: "yearmonth",
	TypeDuration:  "duration",
	TypeGeoPoint:  "geopoint",
	TypeGeoJSON:   "geojson",
	TypeAny:       "any",
}

// String returns the descriptor keyword of the type.
func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

// ParseFieldType resolves a descriptor keyword such as "datetime" or "geopoint".
// Keywords are matched case-insensitively.
func ParseFieldType(s string) (FieldType, bool) {
	ls := strings.ToLower(s)
	for i, name := range fieldTypeNames {
		if name == ls {
			return FieldType(i), true
		}
	}
	return TypeString, false
}

// FormatKind is the tag of a Format.
type FormatKind int

const (
	FormatDefault FormatKind = iota
	FormatEmail
	FormatURI
	FormatBinary
	FormatUUID
	FormatAny
	FormatArray
	FormatObject
	FormatPattern // carries a custom pattern in Format.Pattern
)

var formatNames = [...]string{
	FormatDefault: "default",
	FormatEmail:   "email",
	FormatURI:     "uri",
	FormatBinary:  "binary",
	FormatUUID:    "uuid",
	FormatAny:     "any",
	FormatArray:   "array",
	FormatObject:  "object",
}

// Format is a tagged format value. The zero value is the default format.
type Format struct {
	Kind    FormatKind
	Pattern string
}

// Convenience values for the keyword formats.
var (
	DefaultFormat = Format{Kind: FormatDefault}
	EmailFormat   = Format{Kind: FormatEmail}
	URIFormat     = Format{Kind: FormatURI}
	BinaryFormat  = Format{Kind: FormatBinary}
	UUIDFormat    = Format{Kind: FormatUUID}
	AnyFormat     = Format{Kind: FormatAny}
	ArrayFormat   = Format{Kind: FormatArray}
	ObjectFormat  = Format{Kind: FormatObject}
)

// PatternFormat returns a custom pattern format.
func PatternFormat(pattern string) Format { return Format{Kind: FormatPattern, Pattern: pattern} }

// ParseFormat maps a keyword to its format. Any other string is a custom pattern.
func ParseFormat(s string) Format {
	for i, name := range formatNames {
		if name == s {
			return Format{Kind: FormatKind(i)}
		}
	}
	return PatternFormat(s)
}

// String renders the keyword, or the pattern itself for custom formats.
func (f Format) String() string {
	if f.Kind == FormatPattern {
		return f.Pattern
	}
	if f.Kind < 0 || int(f.Kind) >= len(formatNames) {
		return "default"
	}
	return formatNames[f.Kind]
}

// Equal reports whether both formats render to the same string.
func (f Format) Equal(other Format) bool { return f.String() == other.String() }

// Constraints are declarative. Casting never consults them; see Validator.
type Constraints struct {
	Required  *bool
	Unique    *bool
	MinLength *int
	MaxLength *int
	Minimum   any
	Maximum   any
	Pattern   string
	Enum      []any
}

// IsZero reports whether no constraint is declared.
func (c Constraints) IsZero() bool {
	return c.Required == nil && c.Unique == nil && c.MinLength == nil && c.MaxLength == nil &&
		c.Minimum == nil && c.Maximum == nil && c.Pattern == "" && len(c.Enum) == 0
}
