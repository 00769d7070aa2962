package types

import (
	"fmt"
	"strings"
)

type IndicatorClass int

const (
	// IndicatorClassPrice overlays share the primary price axis.
	IndicatorClassPrice IndicatorClass = iota
	// IndicatorClassOscillator series are routed to the secondary value axis.
	IndicatorClassOscillator
)

// IndicatorKind is the closed set of indicators the chart can overlay.
type IndicatorKind string

const (
	IndicatorSMA20    = IndicatorKind("sma20")
	IndicatorSMA50    = IndicatorKind("sma50")
	IndicatorEMA20    = IndicatorKind("ema20")
	IndicatorEMA50    = IndicatorKind("ema50")
	IndicatorRSI14    = IndicatorKind("rsi14")
	IndicatorMACD     = IndicatorKind("macd")
	IndicatorMACDHist = IndicatorKind("macdHist")
)

var SupportedIndicators = []IndicatorKind{
	IndicatorSMA20, IndicatorSMA50, IndicatorEMA20, IndicatorEMA50,
	IndicatorRSI14, IndicatorMACD, IndicatorMACDHist,
}

func ParseIndicatorKind(s string) (IndicatorKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range SupportedIndicators {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported indicator %q", s)
}

func (k IndicatorKind) String() string {
	return string(k)
}

func (k IndicatorKind) Class() IndicatorClass {
	switch k {
	case IndicatorRSI14, IndicatorMACD, IndicatorMACDHist:
		return IndicatorClassOscillator
	}
	return IndicatorClassPrice
}

// Period returns the rolling window of the moving-average kinds, 0 for pass-through oscillators.
func (k IndicatorKind) Period() int {
	switch k {
	case IndicatorSMA20, IndicatorEMA20:
		return 20
	case IndicatorSMA50, IndicatorEMA50:
		return 50
	}
	return 0
}

func (k IndicatorKind) IsSMA() bool {
	return k == IndicatorSMA20 || k == IndicatorSMA50
}

func (k IndicatorKind) IsEMA() bool {
	return k == IndicatorEMA20 || k == IndicatorEMA50
}

// Label is the display name of the first series the kind emits.
func (k IndicatorKind) Label() string {
	switch k {
	case IndicatorSMA20:
		return "SMA 20"
	case IndicatorSMA50:
		return "SMA 50"
	case IndicatorEMA20:
		return "EMA 20"
	case IndicatorEMA50:
		return "EMA 50"
	case IndicatorRSI14:
		return "RSI 14"
	case IndicatorMACD:
		return "MACD"
	case IndicatorMACDHist:
		return "MACD Histogram"
	}
	return string(k)
}

// IndicatorSelection is an ordered set of enabled indicators.
type IndicatorSelection []IndicatorKind

// ParseIndicatorSelection parses a comma separated list, e.g. "sma20,rsi14".
// Duplicates are dropped, the first occurrence keeps its position.
func ParseIndicatorSelection(s string) (IndicatorSelection, error) {
	var sel IndicatorSelection
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		k, err := ParseIndicatorKind(part)
		if err != nil {
			return nil, err
		}

		if !sel.Has(k) {
			sel = append(sel, k)
		}
	}
	return sel, nil
}

func NewIndicatorSelection(kinds ...IndicatorKind) IndicatorSelection {
	var sel IndicatorSelection
	for _, k := range kinds {
		if !sel.Has(k) {
			sel = append(sel, k)
		}
	}
	return sel
}

func (s IndicatorSelection) Has(k IndicatorKind) bool {
	for _, o := range s {
		if o == k {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with k flipped.
func (s IndicatorSelection) Toggle(k IndicatorKind) IndicatorSelection {
	out := make(IndicatorSelection, 0, len(s)+1)
	found := false
	for _, o := range s {
		if o == k {
			found = true
			continue
		}
		out = append(out, o)
	}
	if !found {
		out = append(out, k)
	}
	return out
}

func (s IndicatorSelection) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
