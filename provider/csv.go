package provider

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"
)

// Opener opens a fresh stream over the same underlying data.
type Opener func() (io.ReadCloser, error)

// FileOpener returns an Opener for the file at path.
func FileOpener(path string) Opener {
	return func() (io.ReadCloser, error) { return os.Open(path) }
}

// BytesOpener returns an Opener that re-reads b on every call.
func BytesOpener(b []byte) Opener {
	return func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(b)), nil }
}

// CSVOption configures a CSV provider.
type CSVOption func(*csvConfig)

type csvConfig struct {
	delimiter  rune
	comment    rune
	header     bool
	lazyQuotes bool
	trimSpace  bool
}

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(r rune) CSVOption { return func(c *csvConfig) { c.delimiter = r } }

// WithComment makes lines starting with r comments.
func WithComment(r rune) CSVOption { return func(c *csvConfig) { c.comment = r } }

// WithoutHeader treats the first line as data. Header then returns nil.
func WithoutHeader() CSVOption { return func(c *csvConfig) { c.header = false } }

// WithLazyQuotes tolerates quotes inside unquoted fields.
func WithLazyQuotes() CSVOption { return func(c *csvConfig) { c.lazyQuotes = true } }

// WithTrimLeadingSpace ignores leading white space in a field.
func WithTrimLeadingSpace() CSVOption { return func(c *csvConfig) { c.trimSpace = true } }

// CSV reads records from a CSV stream. Every cell is present; map empty
// cells to "no value" through the schema's missing values.
type CSV struct {
	open   Opener
	cfg    csvConfig
	header []string

	mu  sync.Mutex
	err error
}

// NewCSV opens the stream once to read the header.
func NewCSV(open Opener, opts ...CSVOption) (*CSV, error) {
	cfg := csvConfig{delimiter: ',', header: true}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	p := &CSV{open: open, cfg: cfg}
	if !cfg.header {
		return p, nil
	}
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer rc.Close()
	h, err := p.reader(rc).Read()
	switch {
	case errors.Is(err, io.EOF):
		h = []string{}
	case err != nil:
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	p.header = h
	return p, nil
}

// CSVFile is NewCSV over a file.
func CSVFile(path string, opts ...CSVOption) (*CSV, error) {
	return NewCSV(FileOpener(path), opts...)
}

// CSVBytes is NewCSV over an in-memory document.
func CSVBytes(b []byte, opts ...CSVOption) (*CSV, error) {
	return NewCSV(BytesOpener(b), opts...)
}

func (p *CSV) reader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = p.cfg.delimiter
	cr.Comment = p.cfg.comment
	cr.LazyQuotes = p.cfg.lazyQuotes
	cr.TrimLeadingSpace = p.cfg.trimSpace
	cr.FieldsPerRecord = -1
	return cr
}

func (p *CSV) Header() []string { return p.header }

// Rows reopens the stream and yields data records. A read error ends the
// sequence and is reported by Err.
func (p *CSV) Rows() iter.Seq[[]*string] {
	return func(yield func([]*string) bool) {
		p.setErr(nil)
		rc, err := p.open()
		if err != nil {
			p.setErr(fmt.Errorf("open csv: %w", err))
			return
		}
		defer rc.Close()
		cr := p.reader(rc)
		if p.cfg.header {
			if _, err := cr.Read(); err != nil {
				if !errors.Is(err, io.EOF) {
					p.setErr(fmt.Errorf("read csv header: %w", err))
				}
				return
			}
		}
		for {
			rec, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				p.setErr(fmt.Errorf("read csv: %w", err))
				return
			}
			if !yield(cells(rec)) {
				return
			}
		}
	}
}

// Err returns the error that ended the most recent iteration, if any.
func (p *CSV) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *CSV) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}
