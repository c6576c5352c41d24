package tableschema

// SelfReferencing is the resource name of a reference within the same schema.
const SelfReferencing = ""

// Reference names the resource and fields a foreign key points at.
type Reference struct {
	Resource string
	Fields   Fields
}

// NewReference returns a reference to resource. Use SelfReferencing for
// fields within the same schema.
func NewReference(resource string, fields ...*Field) *Reference {
	return &Reference{Resource: resource, Fields: fields}
}

// IsSelfReferencing reports whether the reference stays within the same schema.
func (r *Reference) IsSelfReferencing() bool { return r.Resource == SelfReferencing }

// ForeignKey is a dependency from local fields onto a Reference. It is plain
// data; nothing here resolves or checks referential integrity.
type ForeignKey struct {
	Fields    Fields
	Reference *Reference
}

// NewForeignKey returns a foreign key from fields onto reference.
func NewForeignKey(fields Fields, reference *Reference) *ForeignKey {
	return &ForeignKey{Fields: fields, Reference: reference}
}
