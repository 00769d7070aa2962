package csvsource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_Example(t *testing.T) {
	text := "Date,Open,High,Low,Close,Volume\n" +
		"02-02-2024,105,115,100,102,1200\n" +
		"01-02-2024,100,110,95,105,1000\n"

	bars, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, "01-02-2024", bars[0].DateStr)
	assert.Equal(t, "02-02-2024", bars[1].DateStr)
	assert.Equal(t, date(2024, time.February, 1), bars[0].Date)
	assert.Equal(t, date(2024, time.February, 2), bars[1].Date)
	assert.Equal(t, 105.0, bars[0].Close)
	assert.Equal(t, 1200.0, bars[1].Volume)
	assert.True(t, bars.IsSortedAscending())
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		give    string
		err     error
		columns []string
	}{
		{
			name: "empty",
			give: "",
			err:  ErrTooFewLines,
		},
		{
			name: "header only",
			give: "date,open,high,low,close,volume\n\n   \n",
			err:  ErrTooFewLines,
		},
		{
			name:    "missing columns",
			give:    "date,open,high,close\n01-02-2024,1,2,1.5\n",
			err:     ErrMissingColumn,
			columns: []string{"low", "volume"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars, err := Parse(tt.give)
			assert.Nil(t, bars)
			assert.ErrorIs(t, err, tt.err)

			var structural *StructuralError
			require.True(t, errors.As(err, &structural))
			assert.Equal(t, tt.columns, structural.Columns)
		})
	}
}

func TestParse_HeaderAndDelimiter(t *testing.T) {
	text := "VOLUME\tClose\tlow\tHigh\tOPEN\tDate\tRSI14\tMACDSignal\n" +
		"1.03E+06\t102\t100\t115\t105\t2024-02-02\t55.25\t\n" +
		"1000\t105\t95\t110\t100\t2024-02-01\tn/a\t0.0012\n"

	bars, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	first, second := bars[0], bars[1]
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 110.0, first.High)
	assert.True(t, first.RSI14.IsNone())
	assert.True(t, first.MACDSignal.IsSome())
	assert.InDelta(t, 0.0012, first.MACDSignal.Unwrap(), 1e-12)

	assert.Equal(t, 1030000.0, second.Volume)
	assert.Equal(t, 55.25, second.RSI14.Unwrap())
	assert.True(t, second.MACDSignal.IsNone())
	assert.True(t, second.MACD.IsNone())
	assert.True(t, second.MACDHist.IsNone())
}

func TestParseWithReport_SkippedRows(t *testing.T) {
	text := "date,open,high,low,close,volume\n" +
		"01-02-2024,100,110,95,105,1000\n" +
		"\n" +
		"2024/02/03,100,110,95,105,1000\n" +
		"04-02-2024,100,104,95,105,1000\n" +
		"05-02-2024,100,110,95,NaN,1000\n" +
		"06-02-2024,100,110,95,105,-1\n" +
		"07-02-2024,100,110\n" +
		"08-02-2024,100,110,95,,1000\n" +
		"09-02-2024,100,110,95,1e2,1e3\n"

	report, err := ParseWithReport(text)
	require.NoError(t, err)

	assert.Equal(t, 8, report.Rows)
	require.Len(t, report.Bars, 2)
	assert.Equal(t, 100.0, report.Bars[1].Close)
	assert.Equal(t, 1000.0, report.Bars[1].Volume)

	require.Len(t, report.Skipped, 6)

	var dateErr *DateFormatError
	assert.True(t, errors.As(report.Skipped[0], &dateErr))
	assert.Equal(t, "2024/02/03", dateErr.Input)
	assert.Equal(t, 4, report.Skipped[0].Line)
	assert.Equal(t, "2024/02/03,100,110,95,105,1000", report.Skipped[0].Raw)

	assert.ErrorIs(t, report.Skipped[1], ErrPriceRelation)
	assert.Equal(t, 5, report.Skipped[1].Line)
	assert.ErrorIs(t, report.Skipped[2], ErrInvalidNumber)
	assert.ErrorIs(t, report.Skipped[3], ErrNegativeVolume)
	assert.ErrorIs(t, report.Skipped[4], ErrNotEnoughColumns)
	assert.ErrorIs(t, report.Skipped[5], ErrInvalidNumber)
	assert.Equal(t, 9, report.Skipped[5].Line)

	assert.Len(t, multierr.Errors(report.Err()), 6)
}

func TestParseWithReport_UnbalancedQuote(t *testing.T) {
	text := "date,open,high,low,close,volume\n" +
		"01-02-2024,100,110,95,105,1000\n" +
		"\"02-02-2024,105,115,100,102,1200\n" +
		"03-02-2024,102,112,98,110,1300\n" +
		"04-02-2024,110,120,105,115,1400\n" +
		"05-02-2024,115,118,108,112,1500\n"

	report, err := ParseWithReport(text)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Rows)
	require.Len(t, report.Bars, 4)
	assert.Equal(t, "05-02-2024", report.Bars[3].DateStr)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 3, report.Skipped[0].Line)
	assert.Equal(t, "\"02-02-2024,105,115,100,102,1200", report.Skipped[0].Raw)
}

func TestParse_ByteOrderMark(t *testing.T) {
	bars, err := Parse("\ufeffDate,Open,High,Low,Close,Volume\n01-02-2024,100,110,95,105,1000\n")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, date(2024, time.February, 1), bars[0].Date)

	bars, err = Parse("\ufeffDate\tOpen\tHigh\tLow\tClose\tVolume\n2024-02-01\t100\t110\t95\t105\t1000\n")
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestParseWithReport_NoSkippedRows(t *testing.T) {
	report, err := ParseWithReport("date,open,high,low,close,volume\n01-02-2024,1,1,1,1,0\n")
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, 1, report.Rows)
}

func TestParse_InvariantsHoldForOutput(t *testing.T) {
	text := "date,open,high,low,close,volume\n" +
		"03-01-2024,10,12,9,11,5\n" +
		"01-01-2024,10,9,9,11,5\n" +
		"02-01-2024,10,10,10,10,0\n" +
		"02-01-2024,10,11,8,9,1\n"

	bars, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.True(t, bars.IsSortedAscending())

	for _, b := range bars {
		assert.NoError(t, b.Validate())
	}

	// equal dates keep their row order
	assert.Equal(t, 10.0, bars[0].Close)
	assert.Equal(t, 9.0, bars[1].Close)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		give string
		want time.Time
	}{
		{"01-02-2024", date(2024, time.February, 1)},
		{"2024-02-01", date(2024, time.February, 1)},
		{"01/02/2024", date(2024, time.February, 1)},
		{"31/12/1999", date(1999, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			got, err := ParseDate(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "2024/02/01", "1-2-2024", "01.02.2024", "01-02-24", " 01-02-2024"} {
		_, err := ParseDate(bad)
		var dateErr *DateFormatError
		assert.True(t, errors.As(err, &dateErr), "input %q", bad)
	}
}

// The first group of an ambiguous literal is always read as the day, even when the
// literal only makes sense as MM-DD-YYYY. Out-of-range values roll over.
func TestParseDate_Ambiguous(t *testing.T) {
	got, err := ParseDate("03-04-2024")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.April, 3), got)

	got, err = ParseDate("13-02-2024")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 13), got)

	got, err = ParseDate("02-13-2024")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 2), got)

	got, err = ParseDate("02/13/2024")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 2), got)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		give string
		want float64
		err  error
	}{
		{give: "1.5", want: 1.5},
		{give: " 42 ", want: 42},
		{give: "1.03E+06", want: 1030000},
		{give: "-2.5e-3", want: -0.0025},
		{give: ".5", want: 0.5},
		{give: "5.", want: 5},
		{give: "", err: ErrInvalidNumber},
		{give: "   ", err: ErrInvalidNumber},
		{give: "abc", err: ErrInvalidNumber},
		{give: "12abc", err: ErrInvalidNumber},
		{give: "Inf", err: ErrInvalidNumber},
		{give: "NaN", err: ErrInvalidNumber},
		{give: "1e999", err: ErrInvalidNumber},
		{give: "0x10", err: ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			got, err := ParseNumber(tt.give)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestValidateFileName(t *testing.T) {
	assert.NoError(t, ValidateFileName("prices.csv"))
	assert.NoError(t, ValidateFileName("/tmp/PRICES.CSV"))

	err := ValidateFileName("prices.xlsx")
	var fileErr *InvalidFileTypeError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "prices.xlsx", fileErr.FileName)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spy.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,open,high,low,close,volume\n2024-01-02,1,2,0.5,1.5,100\n"), 0o644))

	report, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, report.Bars, 1)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "spy.txt"))
	var fileErr *InvalidFileTypeError
	assert.True(t, errors.As(err, &fileErr))
}
