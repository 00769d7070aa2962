package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/c9s/chartdesk/pkg/types"
)

// OscillatorField selects one of the precomputed oscillator values carried by a bar.
type OscillatorField string

const (
	FieldRSI14      OscillatorField = "rsi14"
	FieldMACD       OscillatorField = "macd"
	FieldMACDSignal OscillatorField = "macdSignal"
	FieldMACDHist   OscillatorField = "macdHist"
)

func (f OscillatorField) get(b types.Bar) optional.Option[float64] {
	switch f {
	case FieldRSI14:
		return b.RSI14
	case FieldMACD:
		return b.MACD
	case FieldMACDSignal:
		return b.MACDSignal
	case FieldMACDHist:
		return b.MACDHist
	}
	return optional.None[float64]()
}

// Oscillator reads the field from every bar. Bars without the field yield None.
func Oscillator(bars types.BarSlice, field OscillatorField) Series {
	out := NewSeries(len(bars))
	for i, b := range bars {
		if v := field.get(b); v.IsSome() && types.IsFinite(v.Unwrap()) {
			out[i] = v
		}
	}
	return out
}

// HasOscillator reports whether at least one bar carries the field.
func HasOscillator(bars types.BarSlice, field OscillatorField) bool {
	for _, b := range bars {
		if field.get(b).IsSome() {
			return true
		}
	}
	return false
}

// Compute derives the series of an indicator kind from the bars.
// Unknown kinds yield an all-None series.
func Compute(bars types.BarSlice, kind types.IndicatorKind) Series {
	switch {
	case kind.IsSMA():
		return SMA(bars.Closes(), kind.Period())
	case kind.IsEMA():
		return EMA(bars.Closes(), kind.Period())
	}

	switch kind {
	case types.IndicatorRSI14:
		return Oscillator(bars, FieldRSI14)
	case types.IndicatorMACD:
		return Oscillator(bars, FieldMACD)
	case types.IndicatorMACDHist:
		return Oscillator(bars, FieldMACDHist)
	}

	return NewSeries(len(bars))
}

// ComputeAll computes every selected indicator in selection order.
func ComputeAll(bars types.BarSlice, selection types.IndicatorSelection) map[types.IndicatorKind]Series {
	out := make(map[types.IndicatorKind]Series, len(selection))
	for _, kind := range selection {
		out[kind] = Compute(bars, kind)
	}
	return out
}
