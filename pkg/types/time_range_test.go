package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buildDailyBars(start time.Time, n int) BarSlice {
	var bars BarSlice
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		bars = append(bars, Bar{
			Date:    d,
			DateStr: d.Format("2006-01-02"),
			Open:    100,
			High:    110,
			Low:     90,
			Close:   105,
			Volume:  1000,
		})
	}
	return bars
}

func assertSuffix(t *testing.T, input, output BarSlice) {
	t.Helper()
	if !assert.LessOrEqual(t, len(output), len(input)) {
		return
	}
	offset := len(input) - len(output)
	for i := range output {
		assert.Equal(t, input[offset+i], output[i])
	}
}

func TestBarSlice_Window(t *testing.T) {
	bars := buildDailyBars(date(2023, time.June, 1), 400)
	last := bars[len(bars)-1].Date

	tests := []struct {
		rng   TimeRange
		start time.Time
	}{
		{TimeRange1D, last.AddDate(0, 0, -1)},
		{TimeRange5D, last.AddDate(0, 0, -5)},
		{TimeRange1M, last.AddDate(0, -1, 0)},
		{TimeRange3M, last.AddDate(0, -3, 0)},
		{TimeRange6M, last.AddDate(0, -6, 0)},
		{TimeRangeYTD, date(last.Year(), time.January, 1)},
		{TimeRange1Y, last.AddDate(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.rng.String(), func(t *testing.T) {
			out := bars.Window(tt.rng)
			assertSuffix(t, bars, out)
			if assert.NotEmpty(t, out) {
				assert.Equal(t, tt.start, out[0].Date)
			}
		})
	}
}

func TestBarSlice_Window_All(t *testing.T) {
	bars := buildDailyBars(date(2020, time.January, 1), 30)
	assert.Equal(t, bars, bars.Window(TimeRangeAll))
	assert.Equal(t, bars, bars.Window(TimeRange("2W")))
	// 5Y covers the whole input
	assert.Equal(t, bars, bars.Window(TimeRange5Y))
}

func TestBarSlice_Window_Empty(t *testing.T) {
	var bars BarSlice
	assert.Empty(t, bars.Window(TimeRange1M))
}

func TestParseTimeRange(t *testing.T) {
	assert.Equal(t, TimeRangeYTD, ParseTimeRange(" ytd "))
	assert.Equal(t, TimeRange1M, ParseTimeRange("1m"))
}

func TestAutoTimeRange(t *testing.T) {
	tests := []struct {
		name string
		days int
		want TimeRange
	}{
		{"single", 1, TimeRange1D},
		{"two days", 2, TimeRange1D},
		{"week", 6, TimeRange5D},
		{"month", 31, TimeRange1M},
		{"quarter", 91, TimeRange3M},
		{"half", 181, TimeRange6M},
		{"most of a year", 300, TimeRangeYTD},
		{"year", 366, TimeRange1Y},
		{"few years", 1000, TimeRange5Y},
		{"decade", 3650, TimeRangeAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := buildDailyBars(date(2010, time.January, 1), tt.days)
			assert.Equal(t, tt.want, AutoTimeRange(bars))
		})
	}

	assert.Equal(t, TimeRangeAll, AutoTimeRange(nil))
}
