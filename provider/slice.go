package provider

import "iter"

// Slice serves rows held in memory.
type Slice struct {
	header []string
	rows   [][]*string
}

// NewSlice returns a provider over rows. A nil header means the source has
// no header and records pair with schema fields positionally.
func NewSlice(header []string, rows ...[]*string) *Slice {
	return &Slice{header: header, rows: rows}
}

// Strings is NewSlice for rows whose cells are all present.
func Strings(header []string, rows ...[]string) *Slice {
	out := make([][]*string, len(rows))
	for i, r := range rows {
		out[i] = cells(r)
	}
	return NewSlice(header, out...)
}

func (s *Slice) Header() []string { return s.header }

func (s *Slice) Rows() iter.Seq[[]*string] {
	return func(yield func([]*string) bool) {
		for _, r := range s.rows {
			if !yield(r) {
				return
			}
		}
	}
}

func cells(r []string) []*string {
	out := make([]*string, len(r))
	for i := range r {
		out[i] = &r[i]
	}
	return out
}
