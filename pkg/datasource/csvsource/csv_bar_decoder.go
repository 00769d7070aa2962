package csvsource

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/pkg/errors"

	"github.com/c9s/chartdesk/pkg/types"
)

// RequiredColumns are the header names every input must carry, in any order and case.
var RequiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// CSVBarDecoder decodes one data record into a Bar. Decoders are bound to a header layout.
type CSVBarDecoder func(record []string) (types.Bar, error)

type columnIndex struct {
	date, open, high, low, close, volume int

	rsi14, macd, macdSignal, macdHist int

	// width is the minimum record length that covers all required columns
	width int
}

func newColumnIndex(header []string) (*columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return nil, &StructuralError{Reason: ErrMissingColumn, Columns: missing}
	}

	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	idx := &columnIndex{
		date:       pos["date"],
		open:       pos["open"],
		high:       pos["high"],
		low:        pos["low"],
		close:      pos["close"],
		volume:     pos["volume"],
		rsi14:      lookup("rsi14"),
		macd:       lookup("macd"),
		macdSignal: lookup("macdsignal"),
		macdHist:   lookup("macdhist"),
	}

	for _, c := range RequiredColumns {
		if pos[c]+1 > idx.width {
			idx.width = pos[c] + 1
		}
	}

	return idx, nil
}

// NewHeaderDecoder builds a decoder for records laid out as the given header row.
// A header without the required columns returns a *StructuralError.
func NewHeaderDecoder(header []string) (CSVBarDecoder, error) {
	idx, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	return idx.decode, nil
}

func (idx *columnIndex) decode(record []string) (types.Bar, error) {
	var bar, empty types.Bar

	if len(record) < idx.width {
		return empty, errors.Wrapf(ErrNotEnoughColumns, "got %d fields, want at least %d", len(record), idx.width)
	}

	dateStr := strings.TrimSpace(record[idx.date])
	date, err := ParseDate(dateStr)
	if err != nil {
		return empty, err
	}

	bar.Date = date
	bar.DateStr = dateStr

	fields := []struct {
		name string
		col  int
		dst  *float64
	}{
		{"open", idx.open, &bar.Open},
		{"high", idx.high, &bar.High},
		{"low", idx.low, &bar.Low},
		{"close", idx.close, &bar.Close},
		{"volume", idx.volume, &bar.Volume},
	}

	for _, f := range fields {
		v, err := ParseNumber(record[f.col])
		if err != nil {
			return empty, errors.Wrapf(err, "%s", f.name)
		}
		*f.dst = v
	}

	if bar.High < bar.Open || bar.High < bar.Close || bar.High < bar.Low ||
		bar.Low > bar.Open || bar.Low > bar.Close {
		return empty, errors.Wrapf(ErrPriceRelation, "O=%v H=%v L=%v C=%v", bar.Open, bar.High, bar.Low, bar.Close)
	}

	if bar.Volume < 0 {
		return empty, errors.Wrapf(ErrNegativeVolume, "V=%v", bar.Volume)
	}

	bar.RSI14 = optionalField(record, idx.rsi14)
	bar.MACD = optionalField(record, idx.macd)
	bar.MACDSignal = optionalField(record, idx.macdSignal)
	bar.MACDHist = optionalField(record, idx.macdHist)
	return bar, nil
}

// ParseNumber parses a plain decimal or scientific-notation literal.
// Empty, malformed and non-finite values return ErrInvalidNumber.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidNumber, "empty value")
	}

	if !numberPattern.MatchString(s) {
		return 0, errors.Wrapf(ErrInvalidNumber, "%q", s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.Wrapf(ErrInvalidNumber, "%q", s)
	}

	return v, nil
}

func optionalField(record []string, col int) optional.Option[float64] {
	if col < 0 || col >= len(record) {
		return optional.None[float64]()
	}

	v, err := ParseNumber(record[col])
	if err != nil {
		return optional.None[float64]()
	}

	return optional.Some(v)
}
