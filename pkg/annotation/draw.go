package annotation

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// FibonacciLevels are the retracement ratios of the vertical span between start and end.
var FibonacciLevels = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}

const (
	fibonacciPivot = 0.5

	shapeStrokeWidth = 1.5
	labelOffsetX     = 5
	labelOffsetY     = 4

	textFontSize = 12.0
	textHeight   = 16
	textPadding  = 4
)

var (
	shapeStrokeColor  = drawing.ParseColor("rgba(255, 255, 255, 0.8)")
	fibPivotColor     = drawing.ParseColor("rgba(255, 255, 255, 0.9)")
	fibLevelColor     = drawing.ParseColor("rgba(255, 255, 255, 0.6)")
	labelColor        = drawing.ParseColor("rgba(255, 255, 255, 0.8)")
	textBackground    = drawing.ParseColor("rgba(10, 10, 10, 0.85)")
	textBorderColor   = drawing.ParseColor("rgba(255, 255, 255, 0.3)")
	textColor         = drawing.ParseColor("rgba(255, 255, 255, 0.95)")
	fibLevelDashArray = []float64{5, 5}
)

// FibonacciLevel is one guide line of a retracement.
type FibonacciLevel struct {
	Ratio float64
	Y     float64
	Label string
}

// Levels computes the guide lines of a fibonacci shape from the top of its span downwards.
func (s Shape) Levels() []FibonacciLevel {
	top := math.Min(s.Start.Y, s.End.Y)
	span := math.Max(s.Start.Y, s.End.Y) - top

	levels := make([]FibonacciLevel, len(FibonacciLevels))
	for i, ratio := range FibonacciLevels {
		levels[i] = FibonacciLevel{
			Ratio: ratio,
			Y:     top + span*ratio,
			Label: fmt.Sprintf("%.1f%%", ratio*100),
		}
	}
	return levels
}

// Draw paints the shape on the renderer with the same procedure for committed shapes and previews.
func (s Shape) Draw(r chart.Renderer) {
	r.ResetStyle()
	r.SetStrokeColor(shapeStrokeColor)
	r.SetStrokeWidth(shapeStrokeWidth)
	r.SetStrokeDashArray(nil)

	switch s.Kind {
	case ShapeRectangle:
		drawRectangle(r, s)
	case ShapeHorizontalLine, ShapeLine:
		drawSegment(r, s)
	case ShapeFibonacci:
		drawFibonacci(r, s)
	case ShapeText:
		drawText(r, s)
	default:
		log.Warnf("skip drawing shape of unknown kind %q", s.Kind)
	}
}

func drawSegment(r chart.Renderer, s Shape) {
	r.MoveTo(px(s.Start.X), px(s.Start.Y))
	r.LineTo(px(s.End.X), px(s.End.Y))
	r.Stroke()
}

func drawRectangle(r chart.Renderer, s Shape) {
	left, top := px(s.Start.X), px(s.Start.Y)
	right, bottom := px(s.End.X), px(s.End.Y)

	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.LineTo(left, top)
	r.Close()
	r.Stroke()
}

func drawFibonacci(r chart.Renderer, s Shape) {
	r.SetFontColor(labelColor)
	r.SetFontSize(textFontSize)

	for _, level := range s.Levels() {
		if level.Ratio == fibonacciPivot {
			r.SetStrokeColor(fibPivotColor)
			r.SetStrokeWidth(2)
			r.SetStrokeDashArray(nil)
		} else {
			r.SetStrokeColor(fibLevelColor)
			r.SetStrokeWidth(1)
			r.SetStrokeDashArray(fibLevelDashArray)
		}

		y := px(level.Y)
		r.MoveTo(px(s.Start.X), y)
		r.LineTo(px(s.End.X), y)
		r.Stroke()

		r.Text(level.Label, px(s.End.X)+labelOffsetX, y+labelOffsetY)
	}

	r.SetStrokeDashArray(nil)
}

// drawText paints a padded background box sized by the measured text, its border and the text.
// The anchor is the top-left corner of the text.
func drawText(r chart.Renderer, s Shape) {
	r.SetFontSize(textFontSize)
	r.SetFontColor(textColor)

	box := r.MeasureText(s.Text)
	x, y := px(s.Start.X), px(s.Start.Y)

	left := x - textPadding
	top := y - textPadding
	right := x + box.Width() + textPadding
	bottom := y + textHeight + textPadding

	r.SetFillColor(textBackground)
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.LineTo(left, top)
	r.Close()
	r.Fill()

	r.SetStrokeColor(textBorderColor)
	r.SetStrokeWidth(1)
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.LineTo(left, top)
	r.Close()
	r.Stroke()

	// go-chart draws text on its baseline
	r.Text(s.Text, x, y+box.Height())
}

func px(v float64) int {
	return int(math.Round(v))
}
