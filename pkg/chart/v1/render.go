package v1

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoBars is returned when rendering a chart without data.
var ErrNoBars = errors.New("no bars to render")

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG, "":
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

func (f Format) RendererProvider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Chart lays the model out on a go-chart chart. The x axis is a category scale over the
// bar indexes and the candle drawer shares the axis ranges.
func (m *RenderModel) Chart(width, height int) chart.Chart {
	xr := &chart.ContinuousRange{Min: -0.5, Max: float64(m.Len()) - 0.5}
	yr := m.PriceRange.Range()

	c := chart.Chart{
		Width:      width,
		Height:     height,
		Background: backgroundStyle(),
		Canvas:     backgroundStyle(),
		XAxis: chart.XAxis{
			Style: axisStyle(),
			Range: xr,
			Ticks: CategoryTicks(m.Labels, m.options.MaxXTicks),
		},
		YAxis: chart.YAxis{
			Style:          axisStyle(),
			Range:          yr,
			ValueFormatter: priceValueFormatter,
		},
	}

	if b, ok := m.oscillatorRange(); ok {
		c.YAxisSecondary = chart.YAxis{
			Style:          axisStyle(),
			Range:          b.Range(),
			ValueFormatter: oscillatorValueFormatter,
		}
	}

	for _, s := range m.Series {
		if s.IsSecondary() && !m.HasSecondaryAxis() {
			continue
		}
		c.Series = append(c.Series, s.chartSeries())
	}

	if len(m.Candles) > 0 {
		c.Elements = append(c.Elements, m.NewCandleDrawer(xr, yr).Render)
	}

	c.Elements = append(c.Elements, chart.LegendLeft(&c, legendStyle()))
	return c
}

// Render writes the chart image in the given format.
func (m *RenderModel) Render(w io.Writer, format Format, width, height int) error {
	if m.Len() == 0 {
		return ErrNoBars
	}

	c := m.Chart(width, height)
	if err := c.Render(format.RendererProvider(), w); err != nil {
		return errors.Wrapf(err, "unable to render %s chart", m.Mode)
	}

	return nil
}

func (m *RenderModel) oscillatorRange() (Bounds, bool) {
	if m.OscillatorRange.IsNone() {
		return Bounds{}, false
	}
	return m.OscillatorRange.Unwrap(), true
}

func (s SeriesSpec) chartSeries() chart.Series {
	switch s.Kind {
	case SeriesKindPlaceholder:
		xs := make([]float64, len(s.Values))
		for i := range xs {
			xs[i] = float64(i)
		}

		return chart.ContinuousSeries{
			Name:    s.Label,
			Style:   s.Style,
			YAxis:   s.YAxis,
			XValues: xs,
			YValues: s.Values.Floats(),
		}

	case SeriesKindHistogram:
		return &HistogramSeries{
			Name:      s.Label,
			Style:     s.Style,
			YAxis:     s.YAxis,
			Values:    s.Values,
			ColorFunc: signColor(histogramUpColor, histogramDownColor),
		}
	}

	return NewIndicatorSeries(s.Label, s.Values, s.YAxis, s.Style)
}

// CategoryTicks labels at most max evenly spaced bar indexes. The unlabeled ticks at
// -0.5 and n-0.5 pin the x range so every bar gets a full slot.
func CategoryTicks(labels []string, max int) []chart.Tick {
	n := len(labels)
	if n == 0 {
		return nil
	}

	if max <= 0 {
		max = 10
	}

	step := int(math.Ceil(float64(n) / float64(max)))
	ticks := []chart.Tick{{Value: -0.5}}
	for i := 0; i < n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})
	return ticks
}

func priceValueFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatPrice(f)
	}
	return ""
}

func oscillatorValueFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return ""
}
