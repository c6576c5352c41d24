// Package tableschema provides:
//
// - Per-field casting between the physical (text) and logical (typed) representation of a cell
// - Schema-level record casting with missing-value substitution
// - A lazy record stream (Table) that reconciles a provider's header against schema fields
// - A separate constraint validation pass reporting Issues (JSON Pointer, code, message)
//
// Design policy:
//   - Casting is fail-soft. Cast/ReverseCast return nil and Test/ReverseTest return false for both
//     malformed values and type/format combinations that are not implemented.
//   - Constraints are metadata. Only Validator consults them, never the casting routines.
//   - Keep only public APIs in the root package; descriptors live under descriptor/, concrete
//     record providers under provider/ and the CLI under cmd/tableschema.
//
// Typical usage:
//
//	f := tableschema.NewField("id", tableschema.TypeInteger)
//	v := f.Cast(tableschema.Text("10")) // 10
//
//	s := tableschema.NewSchema(f, tableschema.NewField("name", tableschema.TypeString))
//	t := tableschema.NewTable(p, s)
//	for row := range t.All() {
//		_ = row
//	}
package tableschema
