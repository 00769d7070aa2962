package indicator

import (
	"github.com/moznion/go-optional"
	"gonum.org/v1/gonum/floats"
)

/*
ema implements the Exponential Moving Average

The first value, at index window-1, is the SMA of the first window values.
After that EMA[i] = v[i]*k + EMA[i-1]*(1-k) with k = 2/(window+1).

https://www.investopedia.com/terms/e/ema.asp
*/
func EMA(values []float64, window int) Series {
	out := NewSeries(len(values))
	if window <= 0 || window > len(values) {
		return out
	}

	multiplier := 2.0 / float64(window+1)

	// the first EMA is actually SMA
	prev := floats.Sum(values[:window]) / float64(window)
	out[window-1] = optional.Some(prev)

	for i := window; i < len(values); i++ {
		prev = values[i]*multiplier + prev*(1-multiplier)
		out[i] = optional.Some(prev)
	}

	return out
}
