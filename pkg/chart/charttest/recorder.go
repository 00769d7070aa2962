// Package charttest provides a chart.Renderer that records drawing calls instead of rasterizing them.
package charttest

import (
	"image"
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var _ chart.Renderer = &Recorder{}

// PathOp is how a recorded path was finished.
type PathOp string

const (
	OpStroke     PathOp = "stroke"
	OpFill       PathOp = "fill"
	OpFillStroke PathOp = "fillStroke"
)

type Path struct {
	Op          PathOp
	Points      []image.Point
	Closed      bool
	StrokeColor drawing.Color
	FillColor   drawing.Color
	StrokeWidth float64
	DashArray   []float64
}

type Text struct {
	Body     string
	X, Y     int
	Color    drawing.Color
	FontSize float64
}

// Recorder is a chart.Renderer for tests. MeasureText assumes a fixed glyph size.
type Recorder struct {
	Paths []Path
	Texts []Text

	// GlyphWidth and GlyphHeight drive MeasureText, 7x12 pixels when zero
	GlyphWidth, GlyphHeight int

	dpi         float64
	current     []image.Point
	closed      bool
	strokeColor drawing.Color
	fillColor   drawing.Color
	fontColor   drawing.Color
	strokeWidth float64
	fontSize    float64
	dashArray   []float64
}

func NewRecorder() *Recorder {
	return &Recorder{dpi: chart.DefaultDPI}
}

// Provider returns a chart.RendererProvider that always hands out this recorder.
func (r *Recorder) Provider() chart.RendererProvider {
	return func(int, int) (chart.Renderer, error) {
		return r, nil
	}
}

// PathsWithOp filters the recorded paths by the operation that finished them.
func (r *Recorder) PathsWithOp(op PathOp) []Path {
	var paths []Path
	for _, p := range r.Paths {
		if p.Op == op {
			paths = append(paths, p)
		}
	}
	return paths
}

func (r *Recorder) Reset() {
	r.Paths = nil
	r.Texts = nil
	r.current = nil
	r.closed = false
}

func (r *Recorder) ResetStyle() {
	r.strokeColor = drawing.Color{}
	r.fillColor = drawing.Color{}
	r.fontColor = drawing.Color{}
	r.strokeWidth = 0
	r.dashArray = nil
}

func (r *Recorder) GetDPI() float64 { return r.dpi }

func (r *Recorder) SetDPI(dpi float64) { r.dpi = dpi }

func (r *Recorder) SetClassName(string) {}

func (r *Recorder) SetStrokeColor(c drawing.Color) { r.strokeColor = c }

func (r *Recorder) SetFillColor(c drawing.Color) { r.fillColor = c }

func (r *Recorder) SetStrokeWidth(width float64) { r.strokeWidth = width }

func (r *Recorder) SetStrokeDashArray(dashArray []float64) { r.dashArray = dashArray }

func (r *Recorder) MoveTo(x, y int) {
	r.current = []image.Point{{X: x, Y: y}}
	r.closed = false
}

func (r *Recorder) LineTo(x, y int) {
	r.current = append(r.current, image.Point{X: x, Y: y})
}

func (r *Recorder) QuadCurveTo(cx, cy, x, y int) {
	r.LineTo(x, y)
}

func (r *Recorder) ArcTo(cx, cy int, rx, ry, startAngle, delta float64) {}

func (r *Recorder) Close() { r.closed = true }

func (r *Recorder) Stroke() { r.finish(OpStroke) }

func (r *Recorder) Fill() { r.finish(OpFill) }

func (r *Recorder) FillStroke() { r.finish(OpFillStroke) }

func (r *Recorder) Circle(radius float64, x, y int) {}

func (r *Recorder) SetFont(*truetype.Font) {}

func (r *Recorder) SetFontColor(c drawing.Color) { r.fontColor = c }

func (r *Recorder) SetFontSize(size float64) { r.fontSize = size }

func (r *Recorder) Text(body string, x, y int) {
	r.Texts = append(r.Texts, Text{Body: body, X: x, Y: y, Color: r.fontColor, FontSize: r.fontSize})
}

func (r *Recorder) MeasureText(body string) chart.Box {
	w, h := r.GlyphWidth, r.GlyphHeight
	if w == 0 {
		w = 7
	}
	if h == 0 {
		h = 12
	}
	return chart.Box{Top: 0, Left: 0, Right: w * len(body), Bottom: h}
}

func (r *Recorder) SetTextRotation(radians float64) {}

func (r *Recorder) ClearTextRotation() {}

func (r *Recorder) Save(w io.Writer) error { return nil }

func (r *Recorder) finish(op PathOp) {
	r.Paths = append(r.Paths, Path{
		Op:          op,
		Points:      r.current,
		Closed:      r.closed,
		StrokeColor: r.strokeColor,
		FillColor:   r.fillColor,
		StrokeWidth: r.strokeWidth,
		DashArray:   r.dashArray,
	})
	r.current = nil
	r.closed = false
}
