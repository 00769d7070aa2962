package types

import (
	"strings"
	"time"
)

// TimeRange is a named window token anchored at the last bar of a sequence.
type TimeRange string

const (
	TimeRange1D  = TimeRange("1D")
	TimeRange5D  = TimeRange("5D")
	TimeRange1M  = TimeRange("1M")
	TimeRange3M  = TimeRange("3M")
	TimeRange6M  = TimeRange("6M")
	TimeRangeYTD = TimeRange("YTD")
	TimeRange1Y  = TimeRange("1Y")
	TimeRange5Y  = TimeRange("5Y")
	TimeRangeAll = TimeRange("ALL")
)

var SupportedTimeRanges = []TimeRange{
	TimeRange1D, TimeRange5D, TimeRange1M, TimeRange3M, TimeRange6M,
	TimeRangeYTD, TimeRange1Y, TimeRange5Y, TimeRangeAll,
}

// ParseTimeRange normalizes the token case, unknown tokens are kept as-is and filter nothing.
func ParseTimeRange(s string) TimeRange {
	return TimeRange(strings.ToUpper(strings.TrimSpace(s)))
}

func (r TimeRange) String() string {
	return string(r)
}

// StartFrom returns the inclusive start date of the window ending at anchor.
// ok is false for ALL and for any token that is not a named range.
func (r TimeRange) StartFrom(anchor time.Time) (start time.Time, ok bool) {
	switch r {
	case TimeRange1D:
		return anchor.AddDate(0, 0, -1), true
	case TimeRange5D:
		return anchor.AddDate(0, 0, -5), true
	case TimeRange1M:
		return anchor.AddDate(0, -1, 0), true
	case TimeRange3M:
		return anchor.AddDate(0, -3, 0), true
	case TimeRange6M:
		return anchor.AddDate(0, -6, 0), true
	case TimeRangeYTD:
		return time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location()), true
	case TimeRange1Y:
		return anchor.AddDate(-1, 0, 0), true
	case TimeRange5Y:
		return anchor.AddDate(-5, 0, 0), true
	}

	return start, false
}

// Window returns the contiguous suffix of the bars that falls inside the range.
// The receiver must be sorted ascending, it is never reordered.
func (s BarSlice) Window(r TimeRange) BarSlice {
	last, ok := s.Last()
	if !ok {
		return s
	}

	start, ok := r.StartFrom(last.Date)
	if !ok {
		return s
	}

	var out BarSlice
	for _, b := range s {
		if !b.Date.Before(start) {
			out = append(out, b)
		}
	}
	return out
}

// AutoTimeRange picks the default window for a freshly loaded sequence from its date span.
func AutoTimeRange(bars BarSlice) TimeRange {
	if len(bars) == 0 {
		return TimeRangeAll
	}

	days := bars.Span().Hours() / 24

	switch {
	case days <= 1:
		return TimeRange1D
	case days <= 5:
		return TimeRange5D
	case days <= 30:
		return TimeRange1M
	case days <= 90:
		return TimeRange3M
	case days <= 180:
		return TimeRange6M
	case days < 365:
		return TimeRangeYTD
	case days <= 365:
		return TimeRange1Y
	case days <= 1825:
		return TimeRange5Y
	}

	return TimeRangeAll
}
