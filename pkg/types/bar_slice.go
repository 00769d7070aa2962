package types

import (
	"sort"
	"time"
)

// BarSlice is a sequence of bars sorted ascending by date.
type BarSlice []Bar

func (s BarSlice) Len() int {
	return len(s)
}

func (s BarSlice) First() (b Bar, ok bool) {
	if len(s) == 0 {
		return b, false
	}
	return s[0], true
}

func (s BarSlice) Last() (b Bar, ok bool) {
	if len(s) == 0 {
		return b, false
	}
	return s[len(s)-1], true
}

// Closes returns the close-price projection of the bars.
func (s BarSlice) Closes() Float64Slice {
	values := make(Float64Slice, len(s))
	for i, b := range s {
		values[i] = b.Close
	}
	return values
}

func (s BarSlice) Volumes() Float64Slice {
	values := make(Float64Slice, len(s))
	for i, b := range s {
		values[i] = b.Volume
	}
	return values
}

// Prices flattens open, high, low and close of every bar.
func (s BarSlice) Prices() Float64Slice {
	values := make(Float64Slice, 0, len(s)*4)
	for _, b := range s {
		values = append(values, b.Open, b.High, b.Low, b.Close)
	}
	return values
}

func (s BarSlice) Labels() []string {
	labels := make([]string, len(s))
	for i, b := range s {
		labels[i] = b.DateStr
	}
	return labels
}

// Span returns the duration between the first and the last bar.
func (s BarSlice) Span() time.Duration {
	if len(s) < 2 {
		return 0
	}
	return s[len(s)-1].Date.Sub(s[0].Date)
}

// SortBarsAscending sorts the bars by date in place, keeping the original order of equal dates.
func SortBarsAscending(bars BarSlice) BarSlice {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars
}

// IsSortedAscending reports whether the bars are in non-decreasing date order.
func (s BarSlice) IsSortedAscending() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Date.Before(s[i-1].Date) {
			return false
		}
	}
	return true
}
