// Package rowio decodes raw delimited catalog exports into ordered row
// records. It is the first stage of every conversion: later stages never
// see raw text, only Records keyed by cleaned header names.
//
// The reader is deliberately forgiving. Real-world exports arrive with
// BOMs, ragged rows, Excel formula prefixes and inconsistent casing, and
// a single bad row must never sink a whole batch.
package rowio

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrNoHeader is returned when the input is empty or no header row can be
// identified. This is a batch-fatal condition: without a header there is
// no way to anchor any row.
var ErrNoHeader = errors.New("no header row found in input")

// Record maps a cleaned header name to the row's string value for that
// column. Missing trailing cells are present with an empty string value,
// never absent, so callers can range over a Record without nil checks.
type Record map[string]string

// Get returns the value for the named column.
// Lookup is exact first; if that misses it falls back to a
// case-insensitive comparison with whitespace and BOM stripping, since
// exports of the same schema vary in header casing between platforms.
func (r Record) Get(name string) string {
	if v, ok := r[name]; ok {
		return v
	}
	want := strings.ToLower(CleanHeader(name))
	for k, v := range r {
		if strings.ToLower(k) == want {
			return v
		}
	}
	return ""
}

// Has reports whether the record carries the named column at all.
func (r Record) Has(name string) bool {
	if _, ok := r[name]; ok {
		return true
	}
	want := strings.ToLower(CleanHeader(name))
	for k := range r {
		if strings.ToLower(k) == want {
			return true
		}
	}
	return false
}

// Table is the decoded form of one delimited file: the cleaned header in
// file order plus one Record per data row.
type Table struct {
	Columns []string
	Rows    []Record

	// Skipped counts data rows that could not be decoded at all.
	// Skipping is a recoverable, counted condition, not an error.
	Skipped int
}

// Read decodes delimited text from r into a Table.
//
// The first non-empty line is the header. Rows with fewer cells than the
// header are padded with empty strings; rows with more cells keep only
// the cells that have a column. Fully empty rows are ignored silently.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(Wrap(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = CleanHeader(h)
	}

	t := &Table{Columns: columns}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A row the csv reader cannot recover is dropped, the
			// rest of the file is still processed.
			t.Skipped++
			continue
		}
		if isEmptyRow(row) {
			continue
		}
		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// ReadString decodes delimited text held in memory.
func ReadString(s string) (*Table, error) {
	return Read(strings.NewReader(s))
}

// readHeader scans for the first non-empty row and returns it.
func readHeader(cr *csv.Reader) ([]string, error) {
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		if err != nil {
			return nil, ErrNoHeader
		}
		if !isEmptyRow(row) {
			return row, nil
		}
	}
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// CleanHeader normalizes a header cell: strips the UTF-8 BOM and
// surrounding whitespace while preserving case. Applied once when the
// Table is built so per-cell access stays cheap.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}

// CleanCell removes common export artifacts from a cell value:
// surrounding whitespace, the Excel formula prefix (="value") and
// stray wrapping quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) > 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
