package v1

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/c9s/chartdesk/pkg/indicator"
	"github.com/c9s/chartdesk/pkg/types"
)

// FallbackBounds is used when the price data cannot produce a usable axis.
var FallbackBounds = Bounds{Min: 0, Max: 100}

type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Bounds) Span() float64 {
	return b.Max - b.Min
}

func (b Bounds) Range() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: b.Min, Max: b.Max}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g]", b.Min, b.Max)
}

// RenderDegeneracyError reports price data whose extent is empty, non-finite or collapsed.
type RenderDegeneracyError struct {
	Min, Max float64
	Points   int
}

func (e *RenderDegeneracyError) Error() string {
	return fmt.Sprintf("degenerate price range min=%v max=%v over %d values, falling back to %s",
		e.Min, e.Max, e.Points, FallbackBounds)
}

// PriceBounds returns the primary axis bounds over all OHLC values.
// On degenerate input it returns FallbackBounds together with a *RenderDegeneracyError.
func PriceBounds(bars types.BarSlice) (Bounds, error) {
	prices := bars.Prices()

	min, max, ok := prices.FiniteMinMax()
	if !ok || len(prices.Finite()) != len(prices) || min == max {
		return FallbackBounds, &RenderDegeneracyError{Min: min, Max: max, Points: len(prices)}
	}

	b := Bounds{Min: 0, Max: 100}
	if min > 0 {
		b.Min = min * 0.98
	}

	if max > 0 {
		b.Max = max * 1.02
	}

	return b, nil
}

// OscillatorBounds returns the secondary axis bounds over the available values of the series.
// ok is false when no series has a value.
func OscillatorBounds(series ...indicator.Series) (b Bounds, ok bool) {
	var values types.Float64Slice
	for _, s := range series {
		for i := range s {
			if v, has := s.At(i); has {
				values.Push(v)
			}
		}
	}

	min, max, ok := values.FiniteMinMax()
	if !ok {
		return b, false
	}

	pad := (max - min) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(max)*0.05, 1)
	}

	return Bounds{Min: min - pad, Max: max + pad}, true
}
