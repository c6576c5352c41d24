package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"sync"

	gojson "github.com/goccy/go-json"

	ts "github.com/reoring/tableschema"
)

// JSON reads rows from a JSON document holding an array of rows.
//
// When the first element is an array it is the header and the remaining
// arrays are records. When the first element is an object, its keys in
// document order form the header and every object row is aligned to them;
// absent keys become absent cells and unknown keys are dropped.
//
// Scalars become their JSON text (strings unquoted), null becomes an absent
// cell and nested containers are re-encoded as compact JSON.
type JSON struct {
	open    Opener
	header  []string
	objects bool

	mu  sync.Mutex
	err error
}

// NewJSON opens the document once to resolve the header.
func NewJSON(open Opener) (*JSON, error) {
	p := &JSON{open: open}
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer rc.Close()
	rr, err := newRowReader(rc)
	if err != nil {
		return nil, err
	}
	first, err := rr.next()
	if errors.Is(err, io.EOF) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if first.keys != nil {
		p.objects = true
		p.header = first.keys
		return p, nil
	}
	p.header = make([]string, len(first.cells))
	for i, c := range first.cells {
		if c != nil {
			p.header[i] = *c
		}
	}
	return p, nil
}

// JSONFile is NewJSON over a file.
func JSONFile(path string) (*JSON, error) { return NewJSON(FileOpener(path)) }

// JSONBytes is NewJSON over an in-memory document.
func JSONBytes(b []byte) (*JSON, error) { return NewJSON(BytesOpener(b)) }

func (p *JSON) Header() []string { return p.header }

// Rows re-reads the document and yields records. A decode error ends the
// sequence and is reported by Err.
func (p *JSON) Rows() iter.Seq[[]*string] {
	return func(yield func([]*string) bool) {
		p.setErr(nil)
		rc, err := p.open()
		if err != nil {
			p.setErr(fmt.Errorf("open json: %w", err))
			return
		}
		defer rc.Close()
		rr, err := newRowReader(rc)
		if err != nil {
			p.setErr(err)
			return
		}
		skipHeader := !p.objects
		for {
			r, err := rr.next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				p.setErr(err)
				return
			}
			if skipHeader {
				skipHeader = false
				continue
			}
			if !yield(p.align(r)) {
				return
			}
		}
	}
}

func (p *JSON) align(r jsonRow) []*string {
	if r.keys == nil {
		return r.cells
	}
	out := make([]*string, len(p.header))
	for i, name := range p.header {
		for j, k := range r.keys {
			if k == name {
				out[i] = r.cells[j]
				break
			}
		}
	}
	return out
}

// Err returns the error that ended the most recent iteration, if any.
func (p *JSON) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *JSON) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// jsonRow is one decoded element. keys is nil for array rows.
type jsonRow struct {
	keys  []string
	cells []*string
}

type rowReader struct {
	dec *gojson.Decoder
	n   int
}

func newRowReader(r io.Reader) (*rowReader, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("read json: document is not an array of rows")
	}
	return &rowReader{dec: dec}, nil
}

// next returns the next row, or io.EOF after the closing bracket.
func (rr *rowReader) next() (jsonRow, error) {
	if !rr.dec.More() {
		if _, err := rr.dec.Token(); err != nil {
			return jsonRow{}, fmt.Errorf("read json: %w", err)
		}
		return jsonRow{}, io.EOF
	}
	idx := rr.n
	rr.n++
	tok, err := rr.dec.Token()
	if err != nil {
		return jsonRow{}, fmt.Errorf("read json row %d: %w", idx, err)
	}
	d, _ := tok.(gojson.Delim)
	switch d {
	case '[':
		var row jsonRow
		row.cells = []*string{}
		for rr.dec.More() {
			c, err := rr.cell()
			if err != nil {
				return jsonRow{}, fmt.Errorf("read json row %d: %w", idx, err)
			}
			row.cells = append(row.cells, c)
		}
		_, err = rr.dec.Token()
		return row, wrapRow(idx, err)
	case '{':
		row := jsonRow{keys: []string{}}
		for rr.dec.More() {
			kt, err := rr.dec.Token()
			if err != nil {
				return jsonRow{}, fmt.Errorf("read json row %d: %w", idx, err)
			}
			key, _ := kt.(string)
			c, err := rr.cell()
			if err != nil {
				return jsonRow{}, fmt.Errorf("read json row %d: %w", idx, err)
			}
			row.keys = append(row.keys, key)
			row.cells = append(row.cells, c)
		}
		_, err = rr.dec.Token()
		return row, wrapRow(idx, err)
	}
	return jsonRow{}, fmt.Errorf("read json row %d: not an array or object", idx)
}

func wrapRow(idx int, err error) error {
	if err != nil {
		return fmt.Errorf("read json row %d: %w", idx, err)
	}
	return nil
}

// cell reads one value as its physical text.
func (rr *rowReader) cell() (*string, error) {
	v, err := rr.value()
	if err != nil {
		return nil, err
	}
	var s string
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = x
	case bool:
		s = strconv.FormatBool(x)
	case json.Number:
		s = x.String()
	default:
		b, err := ts.CurrentJSONDriver().Marshal(x)
		if err != nil {
			return nil, err
		}
		s = string(b)
	}
	return &s, nil
}

// value decodes the next complete value from the token stream.
func (rr *rowReader) value() (any, error) {
	tok, err := rr.dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case gojson.Delim:
		switch x {
		case '[':
			arr := []any{}
			for rr.dec.More() {
				v, err := rr.value()
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			_, err := rr.dec.Token()
			return arr, err
		case '{':
			obj := map[string]any{}
			for rr.dec.More() {
				kt, err := rr.dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				v, err := rr.value()
				if err != nil {
					return nil, err
				}
				obj[key] = v
			}
			_, err := rr.dec.Token()
			return obj, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case gojson.Number:
		return json.Number(x.String()), nil
	case float64:
		return json.Number(strconv.FormatFloat(x, 'g', -1, 64)), nil
	}
	return tok, nil
}
