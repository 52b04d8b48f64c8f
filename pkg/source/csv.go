package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// CSVSource reads rows from CSV data with a header line. Columns are matched
// by header name, so their order does not matter and extra columns are
// ignored.
type CSVSource struct {
	name  string
	open  func() (io.ReadCloser, error)
	comma rune
}

// CSVOption configures a CSVSource.
type CSVOption func(*CSVSource)

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) CSVOption {
	return func(s *CSVSource) { s.comma = r }
}

// NewCSVFile returns a source reading the file at path on every call to Rows.
func NewCSVFile(path string, opts ...CSVOption) *CSVSource {
	s := &CSVSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
	return s.apply(opts)
}

// NewCSVBytes returns a source over CSV data held in memory.
func NewCSVBytes(name string, data []byte, opts ...CSVOption) *CSVSource {
	s := &CSVSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
	return s.apply(opts)
}

func (s *CSVSource) apply(opts []CSVOption) *CSVSource {
	s.comma = ','
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the path or name the source was created with.
func (s *CSVSource) Name() string { return s.name }

// Rows implements DataSource.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.comma
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var rows []Row
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}
	return rows, nil
}
