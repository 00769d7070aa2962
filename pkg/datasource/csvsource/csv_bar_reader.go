package csvsource

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/c9s/chartdesk/pkg/types"
)

// CSVBarReader reads bars from delimited text. Blank lines are dropped and every physical
// line is decoded on its own, so a malformed row never spills into the next one.
type CSVBarReader struct {
	comma   rune
	decoder CSVBarDecoder

	// lines maps a non-empty line to its 1-based line in the source text
	lines []int
	raw   []string

	// next is the index into raw of the next data row
	next int
}

// byteOrderMark is written at the start of the file by some spreadsheet exports
const byteOrderMark = "\ufeff"

// DetectDelimiter returns a tab when the header line contains one, a comma otherwise.
func DetectDelimiter(header string) rune {
	if strings.Contains(header, "\t") {
		return '\t'
	}
	return ','
}

// NewCSVBarReader consumes the header row of text and returns a reader positioned at the first data row.
func NewCSVBarReader(text string) (*CSVBarReader, error) {
	var (
		lines []int
		raw   []string
	)

	text = strings.TrimPrefix(text, byteOrderMark)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, i+1)
		raw = append(raw, line)
	}

	if len(raw) < 2 {
		return nil, &StructuralError{Reason: ErrTooFewLines}
	}

	comma := DetectDelimiter(raw[0])
	header, err := splitLine(raw[0], comma)
	if err != nil {
		return nil, &StructuralError{Reason: err}
	}

	decoder, err := NewHeaderDecoder(header)
	if err != nil {
		return nil, err
	}

	return &CSVBarReader{
		comma:   comma,
		decoder: decoder,
		lines:   lines,
		raw:     raw,
		next:    1,
	}, nil
}

// splitLine decodes one physical line into its fields.
func splitLine(line string, comma rune) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.Read()
}

// Read decodes the next data row. A row that fails to decode is returned as a *RowError,
// the caller may keep reading after it.
func (r *CSVBarReader) Read() (types.Bar, error) {
	var empty types.Bar

	if r.next >= len(r.raw) {
		return empty, io.EOF
	}

	i := r.next
	r.next++

	rec, err := splitLine(r.raw[i], r.comma)
	if err != nil {
		return empty, r.rowError(i, err)
	}

	bar, err := r.decoder(rec)
	if err != nil {
		return empty, r.rowError(i, err)
	}

	return bar, nil
}

// ReadAll reads every remaining row, collecting the dropped ones instead of stopping on them.
func (r *CSVBarReader) ReadAll() (types.BarSlice, []*RowError) {
	var (
		bars    types.BarSlice
		skipped []*RowError
	)

	for {
		bar, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			if rowErr, ok := err.(*RowError); ok {
				skipped = append(skipped, rowErr)
				continue
			}
			break
		}

		bars = append(bars, bar)
	}

	return bars, skipped
}

func (r *CSVBarReader) rowError(i int, err error) *RowError {
	return &RowError{Line: r.lines[i], Raw: r.raw[i], Err: err}
}
