package tableschema

import (
	"iter"
	"strings"
)

// Provider supplies tabular data in its physical representation.
//
// Rows must return a fresh sequence on every call. Forward-only sources
// should reopen their underlying stream; the Table never caches or rewinds.
type Provider interface {
	// Header returns the ordered column names, or nil when the source has none.
	Header() []string
	// Rows yields records; a nil cell is an absent value.
	Rows() iter.Seq[[]*string]
}

// Table casts the records of a Provider with an optional Schema.
type Table struct {
	provider Provider
	schema   *Schema
}

// NewTable returns a table over provider. A nil schema yields raw rows.
func NewTable(provider Provider, schema *Schema) *Table {
	return &Table{provider: provider, schema: schema}
}

// Header returns the provider's header.
func (t *Table) Header() []string { return t.provider.Header() }

// Schema returns the table's schema, possibly nil.
func (t *Table) Schema() *Schema { return t.schema }

// IterOption configures a single iteration.
type IterOption func(*iterConfig)

type iterConfig struct {
	keyed bool
	limit int // <0: unbounded
}

// WithLimit bounds the number of produced rows.
func WithLimit(n int) IterOption {
	return func(c *iterConfig) {
		if n < 0 {
			n = 0
		}
		c.limit = n
	}
}

// WithoutKeyedMatching zips rows against the schema's field order instead of
// reconciling the header.
func WithoutKeyedMatching() IterOption {
	return func(c *iterConfig) { c.keyed = false }
}

func newIterConfig(opts []IterOption) iterConfig {
	c := iterConfig{keyed: true, limit: -1}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// OrderedFields resolves the field used for every header column. Header names
// match fields case-insensitively; unmatched columns are skipped and
// duplicates resolve to the first-declared field. It returns nil when there is
// no schema or no header, meaning the schema's own order applies.
func (t *Table) OrderedFields() Fields {
	if t.schema == nil {
		return nil
	}
	header := t.provider.Header()
	if header == nil {
		return nil
	}
	byName := t.schema.Fields.UniqueByName()
	ordered := make(Fields, 0, len(header))
	for _, name := range header {
		if f, ok := byName[strings.ToLower(name)]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// All returns a lazy sequence of records. Each call starts a new iteration
// over a fresh provider sequence.
func (t *Table) All(opts ...IterOption) iter.Seq[[]any] {
	cfg := newIterConfig(opts)
	return func(yield func([]any) bool) {
		if cfg.limit == 0 {
			return
		}
		var ordering Fields
		if t.schema != nil && cfg.keyed {
			ordering = t.OrderedFields()
		}
		count := 0
		for raw := range t.provider.Rows() {
			if !yield(t.castRow(raw, ordering)) {
				return
			}
			count++
			if cfg.limit > 0 && count >= cfg.limit {
				return
			}
		}
	}
}

// Read materializes the table. Prefer All for large sources.
func (t *Table) Read(opts ...IterOption) [][]any {
	var rows [][]any
	for row := range t.All(opts...) {
		rows = append(rows, row)
	}
	return rows
}

func (t *Table) castRow(raw []*string, ordering Fields) []any {
	if t.schema == nil {
		out := make([]any, len(raw))
		for i, cell := range raw {
			if cell != nil {
				out[i] = *cell
			}
		}
		return out
	}
	return t.schema.CastRecord(raw, ordering)
}

// Iterator is a pull-based cursor over a Table.
type Iterator struct {
	next  func() ([]any, bool)
	stop  func()
	count int
}

// Iterator returns a pull iterator. Callers must call Stop when they abandon
// the iteration early.
func (t *Table) Iterator(opts ...IterOption) *Iterator {
	next, stop := iter.Pull(t.All(opts...))
	return &Iterator{next: next, stop: stop}
}

// Next pulls, casts and returns one record.
func (it *Iterator) Next() ([]any, bool) {
	row, ok := it.next()
	if ok {
		it.count++
	}
	return row, ok
}

// Count returns how many records have been produced so far.
func (it *Iterator) Count() int { return it.count }

// Stop releases the underlying provider sequence.
func (it *Iterator) Stop() { it.stop() }
