package descriptor

import (
	"net/url"
	"slices"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/i18n"
)

// Schema builds a tableschema.Schema. Every problem found is collected and
// returned as ts.Issues together with a nil schema.
func (d *Descriptor) Schema() (*ts.Schema, error) {
	root := ts.Root()
	var iss ts.Issues

	fields := make(ts.Fields, 0, len(d.Fields))
	for i, fd := range d.Fields {
		f, fiss := fd.field(root.Field("fields").Index(i))
		iss = append(iss, fiss...)
		if f != nil {
			fields = append(fields, f)
		}
	}

	s := ts.NewSchema(fields...)
	if d.MissingValues != nil {
		s.MissingValues = append([]string{}, d.MissingValues...)
	}

	s.PrimaryKeys, iss = resolve(fields, d.PrimaryKey, root.Field("primaryKey"), iss)

	for i, fk := range d.ForeignKeys {
		p := root.Field("foreignKeys").Index(i)
		local, more := resolve(fields, fk.Fields, p.Field("fields"), nil)
		iss = append(iss, more...)

		var refFields ts.Fields
		rp := p.Field("reference").Field("fields")
		if fk.Reference.Resource == ts.SelfReferencing {
			refFields, more = resolve(fields, fk.Reference.Fields, rp, nil)
			iss = append(iss, more...)
		} else {
			// Fields of other resources are only known by name.
			for _, name := range fk.Reference.Fields {
				refFields = append(refFields, ts.NewField(name, ts.TypeAny))
			}
		}
		if len(local) != len(refFields) {
			iss = append(iss, rp.Issue(ts.CodeInvalidFormat, i18n.T(ts.CodeInvalidFormat, nil),
				"fields", len(local), "reference", len(refFields)))
		}
		s.ForeignKeys = append(s.ForeignKeys, ts.NewForeignKey(local, ts.NewReference(fk.Reference.Resource, refFields...)))
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

func (fd Field) field(p ts.PathRef) (*ts.Field, ts.Issues) {
	var iss ts.Issues
	if fd.Name == "" {
		iss = append(iss, p.Field("name").Issue(ts.CodeRequired, i18n.T(ts.CodeRequired, nil)))
	}
	typ := ts.TypeString
	if fd.Type != "" {
		t, ok := ts.ParseFieldType(fd.Type)
		if !ok {
			iss = append(iss, p.Field("type").Issue(ts.CodeInvalidType, i18n.T(ts.CodeInvalidType, nil), "type", fd.Type))
		}
		typ = t
	}
	f := ts.NewField(fd.Name, typ)
	f.Title = fd.Title
	f.Description = fd.Description
	if fd.Format != "" {
		f.Format = ts.ParseFormat(fd.Format)
	}
	if fd.RDFType != "" {
		u, err := url.Parse(fd.RDFType)
		if err != nil {
			it := p.Field("rdfType").Issue(ts.CodeInvalidFormat, i18n.T(ts.CodeInvalidFormat, nil))
			it.Cause = err
			iss = append(iss, it)
		}
		f.RDFType = u
	}
	if fd.TrueValues != nil {
		f.TrueValues = append([]string{}, *fd.TrueValues...)
	}
	if fd.FalseValues != nil {
		f.FalseValues = append([]string{}, *fd.FalseValues...)
	}
	if fd.BareNumber != nil {
		f.BareNumber = *fd.BareNumber
	}
	if c := fd.Constraints; c != nil {
		f.Constraints = ts.Constraints{
			Required:  c.Required,
			Unique:    c.Unique,
			MinLength: c.MinLength,
			MaxLength: c.MaxLength,
			Minimum:   c.Minimum,
			Maximum:   c.Maximum,
			Pattern:   c.Pattern,
			Enum:      c.Enum,
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

// resolve maps names onto declared fields, reporting unknown names at p.
func resolve(fields ts.Fields, names KeyList, p ts.PathRef, iss ts.Issues) (ts.Fields, ts.Issues) {
	if len(names) == 0 {
		return nil, iss
	}
	out := make(ts.Fields, 0, len(names))
	for i, name := range names {
		f, ok := fields.Lookup(name)
		if !ok {
			iss = append(iss, p.Index(i).Issue(ts.CodeUnknownKey,
				i18n.T(ts.CodeUnknownKey, map[string]string{"field": name}), "field", name))
			continue
		}
		out = append(out, f)
	}
	return out, iss
}

// FromSchema returns the descriptor of s. Keyword formats and types are
// written in their descriptor spelling.
func FromSchema(s *ts.Schema) *Descriptor {
	d := &Descriptor{MissingValues: append([]string{}, s.MissingValues...)}
	for _, f := range s.Fields {
		d.Fields = append(d.Fields, fromField(f))
	}
	d.PrimaryKey = names(s.PrimaryKeys)
	for _, fk := range s.ForeignKeys {
		out := ForeignKey{Fields: names(fk.Fields)}
		if fk.Reference != nil {
			out.Reference = Reference{Resource: fk.Reference.Resource, Fields: names(fk.Reference.Fields)}
		}
		d.ForeignKeys = append(d.ForeignKeys, out)
	}
	return d
}

func fromField(f *ts.Field) Field {
	fd := Field{
		Name:        f.Name,
		Title:       f.Title,
		Description: f.Description,
		Type:        f.Type.String(),
	}
	defaults := ts.NewField(f.Name, f.Type)
	fd.TrueValues = literals(f.TrueValues, defaults.TrueValues)
	fd.FalseValues = literals(f.FalseValues, defaults.FalseValues)
	if f.Format.Kind != ts.FormatDefault {
		fd.Format = f.Format.String()
	}
	if f.RDFType != nil {
		fd.RDFType = f.RDFType.String()
	}
	if !f.BareNumber {
		bare := false
		fd.BareNumber = &bare
	}
	if c := f.Constraints; !c.IsZero() {
		fd.Constraints = &Constraints{
			Required:  c.Required,
			Unique:    c.Unique,
			MinLength: c.MinLength,
			MaxLength: c.MaxLength,
			Minimum:   c.Minimum,
			Maximum:   c.Maximum,
			Pattern:   c.Pattern,
			Enum:      c.Enum,
		}
	}
	return fd
}

// literals returns nil for the default list and a copy otherwise, empty
// lists included.
func literals(values, defaults []string) *[]string {
	if slices.Equal(values, defaults) {
		return nil
	}
	out := append([]string{}, values...)
	return &out
}

func names(fs ts.Fields) KeyList {
	if len(fs) == 0 {
		return nil
	}
	out := make(KeyList, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}
