package v1

import (
	"github.com/moznion/go-optional"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartdesk/pkg/indicator"
	"github.com/c9s/chartdesk/pkg/types"
)

var log = logrus.WithField("component", "chart")

type SeriesKind string

const (
	// SeriesKindPlaceholder only drives axis layout, the candles are drawn by CandleDrawer
	SeriesKindPlaceholder SeriesKind = "placeholder"
	SeriesKindLine        SeriesKind = "line"
	SeriesKindArea        SeriesKind = "area"
	SeriesKindHistogram   SeriesKind = "histogram"
)

// SeriesSpec describes one series of the chart independently of the renderer.
type SeriesSpec struct {
	Label  string           `json:"label"`
	Kind   SeriesKind       `json:"kind"`
	YAxis  chart.YAxisType  `json:"yAxis"`
	Style  chart.Style      `json:"-"`
	Values indicator.Series `json:"values"`

	Indicator types.IndicatorKind `json:"indicator,omitempty"`
}

func (s SeriesSpec) IsSecondary() bool {
	return s.YAxis == chart.YAxisSecondary
}

// Options carries the presentation settings that do not depend on the data.
type Options struct {
	UpColor   drawing.Color
	DownColor drawing.Color

	// MaxXTicks limits the number of date labels on the x axis
	MaxXTicks int
}

func DefaultOptions() Options {
	return Options{
		UpColor:   DefaultUpColor,
		DownColor: DefaultDownColor,
		MaxXTicks: 10,
	}
}

// RenderModel is the renderer-agnostic description of one chart redraw.
type RenderModel struct {
	Mode       types.ChartMode          `json:"mode"`
	Selection  types.IndicatorSelection `json:"selection"`
	Labels     []string                 `json:"labels"`
	PriceRange Bounds                   `json:"priceRange"`

	// OscillatorRange is set when at least one secondary series has a value
	OscillatorRange optional.Option[Bounds] `json:"-"`

	Series  []SeriesSpec `json:"series"`
	Candles []Candle     `json:"candles,omitempty"`

	Tooltip TooltipFunc `json:"-"`

	// Degeneracy is set when the price range fell back to FallbackBounds
	Degeneracy *RenderDegeneracyError `json:"-"`

	bars    types.BarSlice
	options Options
}

// BuildRenderModel describes the chart of the bars in the given mode with the selected overlays.
func BuildRenderModel(bars types.BarSlice, selection types.IndicatorSelection, mode types.ChartMode, options Options) *RenderModel {
	m := &RenderModel{
		Mode:      mode,
		Selection: selection,
		Labels:    bars.Labels(),
		bars:      bars,
		options:   options,
	}

	bounds, err := PriceBounds(bars)
	if err != nil {
		log.WithError(err).Warn("invalid price range")
		if degenerate, ok := err.(*RenderDegeneracyError); ok {
			m.Degeneracy = degenerate
		}
	}
	m.PriceRange = bounds

	switch mode {
	case types.ChartModeLine, types.ChartModeArea:
		kind := SeriesKindLine
		if mode == types.ChartModeArea {
			kind = SeriesKindArea
		}

		m.Series = append(m.Series, SeriesSpec{
			Label:  LabelClose,
			Kind:   kind,
			YAxis:  chart.YAxisPrimary,
			Style:  closeStyle(mode),
			Values: closeSeries(bars),
		})

	default:
		m.Series = append(m.Series, SeriesSpec{
			Label:  LabelCandlestick,
			Kind:   SeriesKindPlaceholder,
			YAxis:  chart.YAxisPrimary,
			Style:  placeholderStyle(),
			Values: closeSeries(bars),
		})
		m.Candles = NewCandles(bars)
	}

	for _, kind := range selection {
		m.Series = append(m.Series, indicatorSeriesSpecs(bars, kind)...)
	}

	var secondary []indicator.Series
	for _, s := range m.Series {
		if s.IsSecondary() {
			secondary = append(secondary, s.Values)
		}
	}

	if b, ok := OscillatorBounds(secondary...); ok {
		m.OscillatorRange = optional.Some(b)
	}

	m.Tooltip = newTooltipFunc(bars, mode, m.Series)
	return m
}

func (m *RenderModel) Len() int {
	return len(m.bars)
}

func (m *RenderModel) Bars() types.BarSlice {
	return m.bars
}

// HasSecondaryAxis reports whether a secondary series is present and has values.
func (m *RenderModel) HasSecondaryAxis() bool {
	return m.OscillatorRange.IsSome()
}

func (m *RenderModel) NewCandleDrawer(xr, yr *chart.ContinuousRange) *CandleDrawer {
	return &CandleDrawer{
		Candles:   m.Candles,
		XRange:    xr,
		YRange:    yr,
		UpColor:   m.options.UpColor,
		DownColor: m.options.DownColor,
	}
}

func indicatorSeriesSpecs(bars types.BarSlice, kind types.IndicatorKind) []SeriesSpec {
	axis := chart.YAxisPrimary
	if kind.Class() == types.IndicatorClassOscillator {
		axis = chart.YAxisSecondary
	}

	spec := SeriesSpec{
		Label:     kind.Label(),
		Kind:      SeriesKindLine,
		YAxis:     axis,
		Style:     indicatorStyle(kind.Label()),
		Values:    indicator.Compute(bars, kind),
		Indicator: kind,
	}

	switch kind {
	case types.IndicatorMACD:
		signal := SeriesSpec{
			Label:     LabelMACDSignal,
			Kind:      SeriesKindLine,
			YAxis:     axis,
			Style:     indicatorStyle(LabelMACDSignal),
			Values:    indicator.Oscillator(bars, indicator.FieldMACDSignal),
			Indicator: kind,
		}
		return []SeriesSpec{spec, signal}

	case types.IndicatorMACDHist:
		spec.Kind = SeriesKindHistogram
		spec.Style = chart.Style{FillColor: histogramUpColor}
	}

	return []SeriesSpec{spec}
}

func closeSeries(bars types.BarSlice) indicator.Series {
	s := indicator.NewSeries(len(bars))
	for i, b := range bars {
		s[i] = optional.Some(b.Close)
	}
	return s
}
