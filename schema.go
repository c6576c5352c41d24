package tableschema

import "slices"

// Schema models a record: ordered field descriptors, the sentinels that mean
// "no value", and declarative key metadata.
//
// Casts operate from a physical representation (text) to a logical one (Go
// values); reverse casts go the other way.
type Schema struct {
	Fields        Fields
	MissingValues []string
	PrimaryKeys   Fields
	ForeignKeys   []*ForeignKey
}

// NewSchema returns a schema whose only missing value is the empty string.
func NewSchema(fields ...*Field) *Schema {
	return &Schema{
		Fields:        fields,
		MissingValues: []string{""},
	}
}

// Field returns the first-declared field whose unique name matches name.
func (s *Schema) Field(name string) (*Field, bool) { return s.Fields.Lookup(name) }

// CastRecord casts a record positionally against ordering, or against the
// schema's own fields when ordering is nil. The result is clipped to the
// shorter of the record and the ordering.
func (s *Schema) CastRecord(record []*string, ordering Fields) []any {
	fields := s.ordering(ordering)
	n := min(len(record), len(fields))
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = s.Cast(record[i], fields[i])
	}
	return out
}

// Cast casts a single physical value, treating missing-value sentinels as nil.
func (s *Schema) Cast(value *string, field *Field) any {
	v, err := s.cast(value, field)
	if err != nil {
		return nil
	}
	return v
}

// Test reports whether Cast would succeed. Missing values always succeed.
func (s *Schema) Test(value *string, field *Field) bool {
	_, err := s.cast(value, field)
	return err == nil
}

func (s *Schema) cast(value *string, field *Field) (any, error) {
	if value != nil && slices.Contains(s.MissingValues, *value) {
		value = nil
	}
	return field.cast(value)
}

// ReverseCastRecord is the mirror of CastRecord.
func (s *Schema) ReverseCastRecord(record []any, ordering Fields) []*string {
	fields := s.ordering(ordering)
	n := min(len(record), len(fields))
	out := make([]*string, n)
	for i := 0; i < n; i++ {
		out[i] = s.ReverseCast(record[i], fields[i])
	}
	return out
}

// ReverseCast casts a logical value to text. An absent (nil) value becomes
// the first missing value; a value the field cannot render becomes nil.
func (s *Schema) ReverseCast(value any, field *Field) *string {
	text, err := s.reverseCast(value, field)
	if err != nil {
		return nil
	}
	if text == nil {
		return s.missingValue()
	}
	return text
}

// ReverseTest reports whether the field-level reverse cast would succeed.
func (s *Schema) ReverseTest(value any, field *Field) bool {
	_, err := s.reverseCast(value, field)
	return err == nil
}

func (s *Schema) reverseCast(value any, field *Field) (*string, error) {
	return field.reverseCast(value)
}

func (s *Schema) missingValue() *string {
	if len(s.MissingValues) == 0 {
		return nil
	}
	mv := s.MissingValues[0]
	return &mv
}

func (s *Schema) ordering(ordering Fields) Fields {
	if ordering != nil {
		return ordering
	}
	return s.Fields
}
