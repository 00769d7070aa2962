package v1

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartdesk/pkg/types"
)

var (
	DefaultUpColor   = drawing.ParseColor("#22c55e")
	DefaultDownColor = drawing.ParseColor("#ef4444")

	BackgroundColor = drawing.ParseColor("#0a0a0a")
	AxisTextColor   = drawing.ParseColor("#d1d5db")
	LegendTextColor = drawing.ParseColor("#e5e7eb")
	BorderColor     = drawing.ParseColor("#374151")

	closeLineColor = drawing.ParseColor("#ffffff")
	closeAreaColor = drawing.ParseColor("rgba(255, 255, 255, 0.1)")

	histogramUpColor   = drawing.ParseColor("rgba(34, 197, 94, 0.3)")
	histogramDownColor = drawing.ParseColor("rgba(239, 68, 68, 0.3)")

	volumeUpColor   = drawing.ParseColor("rgba(34, 197, 94, 0.6)")
	volumeDownColor = drawing.ParseColor("rgba(239, 68, 68, 0.6)")
)

const (
	LabelCandlestick = "Candlestick"
	LabelClose       = "Close Price"
	LabelMACDSignal  = "MACD Signal"
	LabelVolume      = "Volume"
)

var dashed = []float64{5, 5}

// indicatorStyles holds the line style of every overlay series, keyed by its label.
var indicatorStyles = map[string]chart.Style{
	types.IndicatorSMA20.Label(): {StrokeColor: drawing.ParseColor("#9ca3af"), StrokeWidth: 1, StrokeDashArray: dashed},
	types.IndicatorSMA50.Label(): {StrokeColor: drawing.ParseColor("#6b7280"), StrokeWidth: 1, StrokeDashArray: dashed},
	types.IndicatorEMA20.Label(): {StrokeColor: drawing.ParseColor("#d1d5db"), StrokeWidth: 1.5},
	types.IndicatorEMA50.Label(): {StrokeColor: drawing.ParseColor("#f3f4f6"), StrokeWidth: 1.5},
	types.IndicatorRSI14.Label(): {StrokeColor: drawing.ParseColor("#f59e0b"), StrokeWidth: 2},
	types.IndicatorMACD.Label():  {StrokeColor: drawing.ParseColor("#3b82f6"), StrokeWidth: 2},
	LabelMACDSignal:              {StrokeColor: drawing.ParseColor("#ec4899"), StrokeWidth: 2},
}

func indicatorStyle(label string) chart.Style {
	if s, ok := indicatorStyles[label]; ok {
		return s
	}
	return chart.Style{StrokeWidth: 1}
}

func closeStyle(mode types.ChartMode) chart.Style {
	s := chart.Style{StrokeColor: closeLineColor, StrokeWidth: 1.5}
	if mode == types.ChartModeArea {
		s.FillColor = closeAreaColor
	}
	return s
}

// placeholderStyle keeps a series on the chart for axis layout without drawing anything.
func placeholderStyle() chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    chart.Disabled,
	}
}

func axisStyle() chart.Style {
	return chart.Style{
		FontColor:   AxisTextColor,
		StrokeColor: BorderColor,
		FontSize:    9,
	}
}

func backgroundStyle() chart.Style {
	return chart.Style{FillColor: BackgroundColor}
}

func legendStyle() chart.Style {
	return chart.Style{
		FillColor:   BackgroundColor,
		FontColor:   LegendTextColor,
		StrokeColor: BorderColor,
	}
}

// isOscillatorLabel reports whether a series label denotes an RSI or MACD family series.
func isOscillatorLabel(label string) bool {
	return strings.Contains(label, "RSI") || strings.Contains(label, "MACD") || strings.Contains(label, "Signal")
}
