package v1

import (
	"fmt"
	"strings"

	"github.com/leekchan/accounting"

	"github.com/c9s/chartdesk/pkg/types"
)

var volumeFormatter = accounting.DefaultAccounting("", 0)

// Tooltip is the hover content of one bar index.
type Tooltip struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

func (t Tooltip) String() string {
	return t.Title + "\n" + strings.Join(t.Lines, "\n")
}

// TooltipFunc returns the tooltip of a bar index, ok is false for indexes outside the data.
type TooltipFunc func(index int) (Tooltip, bool)

func FormatVolume(v float64) string {
	return volumeFormatter.FormatMoney(v)
}

func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatSeriesValue formats a value by its series label: RSI with 2 decimals,
// the MACD family with 6 decimals and everything else as a price.
func FormatSeriesValue(label string, v float64) string {
	switch {
	case strings.Contains(label, "RSI"):
		return fmt.Sprintf("%s: %.2f", label, v)
	case isOscillatorLabel(label):
		return fmt.Sprintf("%s: %.6f", label, v)
	}
	return fmt.Sprintf("%s: %s", label, FormatPrice(v))
}

func signed(v float64, format string) string {
	s := fmt.Sprintf(format, v)
	if v >= 0 {
		return "+" + s
	}
	return s
}

// CandleTooltipLines describes one bar in candlestick mode.
func CandleTooltipLines(b types.Bar) []string {
	change := b.GetChange()
	lines := []string{
		"Open: " + FormatPrice(b.Open),
		"High: " + FormatPrice(b.High),
		"Low: " + FormatPrice(b.Low),
		fmt.Sprintf("Close: %s %s (%s%%)", FormatPrice(b.Close), signed(change, "%.2f"), signedPercentage(change, b.GetChangePercentage())),
		"Volume: " + FormatVolume(b.Volume),
	}

	if b.RSI14.IsSome() {
		lines = append(lines, fmt.Sprintf("RSI 14: %.2f", b.RSI14.Unwrap()))
	}
	if b.MACD.IsSome() {
		lines = append(lines, fmt.Sprintf("MACD: %.6f", b.MACD.Unwrap()))
	}
	if b.MACDSignal.IsSome() {
		lines = append(lines, fmt.Sprintf("MACD Signal: %.6f", b.MACDSignal.Unwrap()))
	}
	if b.MACDHist.IsSome() {
		lines = append(lines, fmt.Sprintf("MACD Hist: %.6f", b.MACDHist.Unwrap()))
	}

	return lines
}

// the sign follows the absolute change, so a zero-open bar still shows "+0.00"
func signedPercentage(change, pct float64) string {
	s := fmt.Sprintf("%.2f", pct)
	if change >= 0 {
		return "+" + s
	}
	return s
}

func newTooltipFunc(bars types.BarSlice, mode types.ChartMode, series []SeriesSpec) TooltipFunc {
	return func(index int) (Tooltip, bool) {
		if index < 0 || index >= len(bars) {
			return Tooltip{}, false
		}

		bar := bars[index]
		tip := Tooltip{Title: bar.DateStr}

		if mode == types.ChartModeCandlestick {
			tip.Lines = CandleTooltipLines(bar)
			return tip, true
		}

		for _, s := range series {
			if s.Kind == SeriesKindPlaceholder {
				continue
			}

			if v, ok := s.Values.At(index); ok {
				tip.Lines = append(tip.Lines, FormatSeriesValue(s.Label, v))
			}
		}

		return tip, true
	}
}
