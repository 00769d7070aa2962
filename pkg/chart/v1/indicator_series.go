package v1

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartdesk/pkg/indicator"
)

var (
	_ chart.Series = &IndicatorSeries{}
	_ chart.Series = &HistogramSeries{}
)

// IndicatorSeries draws a series positioned by bar index. Unavailable values break
// the line into separate runs instead of being drawn as zero.
type IndicatorSeries struct {
	Name   string
	Style  chart.Style
	YAxis  chart.YAxisType
	Values indicator.Series
}

func NewIndicatorSeries(name string, values indicator.Series, yAxis chart.YAxisType, style chart.Style) *IndicatorSeries {
	return &IndicatorSeries{
		Name:   name,
		Style:  style,
		YAxis:  yAxis,
		Values: values,
	}
}

// Implement chart.Series interface for IndicatorSeries.
func (is *IndicatorSeries) GetName() string {
	return is.Name
}

func (is *IndicatorSeries) GetStyle() chart.Style {
	return is.Style
}

func (is *IndicatorSeries) GetYAxis() chart.YAxisType {
	return is.YAxis
}

func (is *IndicatorSeries) Validate() error {
	return nil
}

// Runs splits the series into index ranges [start, end) of consecutive available values.
func (is *IndicatorSeries) Runs() [][2]int {
	var runs [][2]int
	start := -1
	for i := range is.Values {
		if _, ok := is.Values.At(i); ok {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			runs = append(runs, [2]int{start, i})
			start = -1
		}
	}

	if start >= 0 {
		runs = append(runs, [2]int{start, len(is.Values)})
	}

	return runs
}

func (is *IndicatorSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := is.Style.InheritFrom(defaults)

	for _, run := range is.Runs() {
		if style.ShouldDrawFill() {
			bottom := canvasBox.Bottom
			style.GetFillOptions().WriteDrawingOptionsToRenderer(r)

			x0, y0 := is.point(canvasBox, xrange, yrange, run[0])
			r.MoveTo(x0, y0)

			x, y := x0, y0
			for i := run[0] + 1; i < run[1]; i++ {
				x, y = is.point(canvasBox, xrange, yrange, i)
				r.LineTo(x, y)
			}

			r.LineTo(x, bottom)
			r.LineTo(x0, bottom)
			r.LineTo(x0, y0)
			r.Fill()
		}

		if style.ShouldDrawStroke() {
			style.GetStrokeOptions().WriteDrawingOptionsToRenderer(r)

			x, y := is.point(canvasBox, xrange, yrange, run[0])
			r.MoveTo(x, y)
			for i := run[0] + 1; i < run[1]; i++ {
				x, y = is.point(canvasBox, xrange, yrange, i)
				r.LineTo(x, y)
			}
			r.Stroke()
		}
	}
}

func (is *IndicatorSeries) point(canvasBox chart.Box, xrange, yrange chart.Range, i int) (int, int) {
	v, _ := is.Values.At(i)
	return canvasBox.Left + xrange.Translate(float64(i)), canvasBox.Bottom - yrange.Translate(v)
}

// HistogramSeries draws one bar per available value, from zero (clamped to the canvas) to the value.
type HistogramSeries struct {
	Name   string
	Style  chart.Style
	YAxis  chart.YAxisType
	Values indicator.Series

	// ColorFunc picks the fill of the bar at index i
	ColorFunc func(i int, v float64) drawing.Color
}

func (hs *HistogramSeries) GetName() string {
	return hs.Name
}

func (hs *HistogramSeries) GetStyle() chart.Style {
	return hs.Style
}

func (hs *HistogramSeries) GetYAxis() chart.YAxisType {
	return hs.YAxis
}

func (hs *HistogramSeries) Validate() error {
	return nil
}

func (hs *HistogramSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	n := len(hs.Values)
	if n == 0 {
		return
	}

	barWidth := math.Max(float64(canvasBox.Width())/float64(n)*candleOccupancy, 1)
	zero := clampInt(canvasBox.Bottom-yrange.Translate(0), canvasBox.Top, canvasBox.Bottom)

	for i := range hs.Values {
		v, ok := hs.Values.At(i)
		if !ok {
			continue
		}

		x := float64(canvasBox.Left + xrange.Translate(float64(i)))
		y := clampInt(canvasBox.Bottom-yrange.Translate(v), canvasBox.Top, canvasBox.Bottom)

		top, bottom := minInt(y, zero), maxInt(y, zero)
		if bottom == top {
			bottom = top + 1
		}

		color := hs.Style.FillColor
		if hs.ColorFunc != nil {
			color = hs.ColorFunc(i, v)
		}

		r.SetFillColor(color)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(0)
		left := int(math.Round(x - barWidth/2))
		right := int(math.Round(x + barWidth/2))
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.Fill()
	}
}

func signColor(up, down drawing.Color) func(int, float64) drawing.Color {
	return func(_ int, v float64) drawing.Color {
		if v >= 0 {
			return up
		}
		return down
	}
}

func clampInt(v, lo, hi int) int {
	return maxInt(lo, minInt(v, hi))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
