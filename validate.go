package tableschema

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reoring/tableschema/i18n"
)

// Validator checks cast records against field Constraints and the schema's
// primary key. It is a separate pass: casting itself never consults
// constraints. A Validator remembers values for uniqueness checks, so use one
// instance per table.
type Validator struct {
	schema   *Schema
	seen     map[int]map[string]struct{} // by column position
	keys     map[string]struct{}
	patterns map[string]*regexp.Regexp
}

// NewValidator returns a validator for records cast by s.
func NewValidator(s *Schema) *Validator {
	return &Validator{
		schema:   s,
		seen:     map[int]map[string]struct{}{},
		keys:     map[string]struct{}{},
		patterns: map[string]*regexp.Regexp{},
	}
}

// Check validates one cast record. Values pair positionally with ordering, or
// with the schema's fields when ordering is nil. Issue paths are /row/field;
// a column repeating an earlier column's field is addressed as /row/column.
// Uniqueness is tracked per column position.
func (v *Validator) Check(row int, record []any, ordering Fields) Issues {
	fields := v.schema.ordering(ordering)
	n := min(len(record), len(fields))
	var iss Issues
	base := Root().Index(row)
	named := make(map[*Field]struct{}, n)
	for i := 0; i < n; i++ {
		p := base.Field(fields[i].Name)
		if _, again := named[fields[i]]; again {
			p = base.Index(i)
		}
		named[fields[i]] = struct{}{}
		iss = append(iss, v.checkValue(p, i, fields[i], record[i])...)
	}
	if pk := v.checkPrimaryKey(base, record, fields[:n]); pk != nil {
		iss = append(iss, *pk)
	}
	return iss
}

func (v *Validator) checkValue(p PathRef, col int, f *Field, value any) Issues {
	c := f.Constraints
	if value == nil {
		if c.Required != nil && *c.Required {
			return Issues{p.Issue(CodeRequired, i18n.T(CodeRequired, nil))}
		}
		return nil
	}
	var iss Issues
	if c.Unique != nil && *c.Unique {
		set := v.seen[col]
		if set == nil {
			set = map[string]struct{}{}
			v.seen[col] = set
		}
		k := valueKey(value)
		if _, dup := set[k]; dup {
			iss = append(iss, p.Issue(CodeUniqueness, i18n.T(CodeUniqueness, nil), "value", value))
		}
		set[k] = struct{}{}
	}
	if n, ok := length(value); ok {
		if c.MinLength != nil && n < *c.MinLength {
			iss = append(iss, p.Issue(CodeTooShort, msg(CodeTooShort, "min", *c.MinLength), "min", *c.MinLength, "got", n))
		}
		if c.MaxLength != nil && n > *c.MaxLength {
			iss = append(iss, p.Issue(CodeTooLong, msg(CodeTooLong, "max", *c.MaxLength), "max", *c.MaxLength, "got", n))
		}
	}
	if c.Minimum != nil {
		if cmp, ok := compare(value, v.bound(f, c.Minimum)); ok && cmp < 0 {
			iss = append(iss, p.Issue(CodeTooSmall, msg(CodeTooSmall, "min", c.Minimum), "min", c.Minimum, "got", value))
		}
	}
	if c.Maximum != nil {
		if cmp, ok := compare(value, v.bound(f, c.Maximum)); ok && cmp > 0 {
			iss = append(iss, p.Issue(CodeTooBig, msg(CodeTooBig, "max", c.Maximum), "max", c.Maximum, "got", value))
		}
	}
	if c.Pattern != "" {
		if s, ok := value.(string); ok {
			re, err := v.pattern(c.Pattern)
			if err != nil {
				it := p.Issue(CodeInvalidFormat, i18n.T(CodeInvalidFormat, nil), "pattern", c.Pattern)
				it.Cause = err
				iss = append(iss, it)
			} else if !re.MatchString(s) {
				iss = append(iss, p.Issue(CodePattern, msg(CodePattern, "pattern", c.Pattern), "pattern", c.Pattern))
			}
		}
	}
	if len(c.Enum) > 0 && !v.inEnum(f, value) {
		iss = append(iss, p.Issue(CodeInvalidEnum, i18n.T(CodeInvalidEnum, nil), "got", value))
	}
	return iss
}

func (v *Validator) checkPrimaryKey(base PathRef, record []any, fields Fields) *Issue {
	if len(v.schema.PrimaryKeys) == 0 {
		return nil
	}
	parts := make([]string, 0, len(v.schema.PrimaryKeys))
	for _, pk := range v.schema.PrimaryKeys {
		idx := -1
		for i, f := range fields {
			if f.Equal(pk) {
				idx = i
				break
			}
		}
		if idx < 0 {
			// The key is not fully present in this record.
			return nil
		}
		parts = append(parts, valueKey(record[idx]))
	}
	k := strings.Join(parts, "\x1f")
	if _, dup := v.keys[k]; dup {
		it := base.Issue(CodeUniqueness, i18n.T(CodeUniqueness, nil), "primaryKey", fieldNames(v.schema.PrimaryKeys))
		return &it
	}
	v.keys[k] = struct{}{}
	return nil
}

func (v *Validator) pattern(p string) (*regexp.Regexp, error) {
	if re, ok := v.patterns[p]; ok {
		return re, nil
	}
	re, err := regexp.Compile("^(?:" + p + ")$")
	if err != nil {
		return nil, err
	}
	v.patterns[p] = re
	return re, nil
}

// bound converts a constraint value to the field's logical representation.
// Descriptors usually carry dates and times as text.
func (v *Validator) bound(f *Field, b any) any {
	if s, ok := b.(string); ok {
		if cv := f.Cast(&s); cv != nil {
			return cv
		}
	}
	return b
}

func (v *Validator) inEnum(f *Field, value any) bool {
	for _, e := range enumValues(f) {
		if cmp, ok := compare(value, e); ok && cmp == 0 {
			return true
		}
		if reflect.DeepEqual(value, e) {
			return true
		}
	}
	return false
}

// enumValues returns the field's enum cast to logical values where possible.
func enumValues(f *Field) []any {
	out := make([]any, 0, len(f.Constraints.Enum))
	for _, e := range f.Constraints.Enum {
		if s, ok := e.(string); ok {
			if cv := f.Cast(&s); cv != nil {
				out = append(out, cv)
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// ValidateTable casts every row of t and validates it. It returns nil when
// no issue was found, Issues otherwise, or ctx.Err() when cancelled.
func ValidateTable(ctx context.Context, t *Table, opts ...IterOption) error {
	if t.schema == nil {
		return nil
	}
	cfg := newIterConfig(opts)
	var ordering Fields
	if cfg.keyed {
		ordering = t.OrderedFields()
	}
	v := NewValidator(t.schema)
	var iss Issues
	row := 0
	for rec := range t.All(opts...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		iss = append(iss, v.Check(row, rec, ordering)...)
		row++
	}
	if len(iss) == 0 {
		return nil
	}
	return iss
}

func msg(code, key string, val any) string {
	return i18n.T(code, map[string]string{key: fmt.Sprint(val)})
}

func fieldNames(fs Fields) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

func valueKey(v any) string {
	if b, err := CurrentJSONDriver().Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%#v", v)
}

func length(v any) (int, bool) {
	switch x := v.(type) {
	case string:
		return utf8.RuneCountInString(x), true
	case []any:
		return len(x), true
	case map[string]any:
		return len(x), true
	}
	return 0, false
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// compare orders a against b when both share a comparable logical kind.
func compare(a, b any) (int, bool) {
	if x, ok := numeric(a); ok {
		y, ok := numeric(b)
		if !ok {
			if s, isStr := b.(string); isStr {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return 0, false
				}
				y = f
			} else {
				return 0, false
			}
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case YearMonth:
		y, ok := b.(YearMonth)
		if !ok {
			return 0, false
		}
		xm, ym := x.Year*12+int(x.Month), y.Year*12+int(y.Month)
		switch {
		case xm < ym:
			return -1, true
		case xm > ym:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok || x != y {
			return 0, false
		}
		return 0, true
	}
	return 0, false
}
