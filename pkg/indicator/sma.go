package indicator

import (
	"github.com/moznion/go-optional"
	"gonum.org/v1/gonum/floats"
)

/*
sma implements the Simple Moving Average

The value at index i is the arithmetic mean of the window values ending at i.
Indexes below window-1 have no value.

https://www.investopedia.com/terms/s/sma.asp
*/
func SMA(values []float64, window int) Series {
	out := NewSeries(len(values))
	if window <= 0 || window > len(values) {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		out[i] = optional.Some(floats.Sum(values[i-window+1:i+1]) / float64(window))
	}

	return out
}
