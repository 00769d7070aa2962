package v1

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartdesk/pkg/types"
)

const (
	// candleOccupancy is the fraction of the per-bar horizontal space a body takes
	candleOccupancy = 0.6

	minCandleWidth      = 2.0
	minCandleBodyHeight = 1
)

// Candle is the OHLC payload of one bar, positioned by its index.
type Candle struct {
	Index int     `json:"index"`
	Open  float64 `json:"o"`
	High  float64 `json:"h"`
	Low   float64 `json:"l"`
	Close float64 `json:"c"`
}

func (c Candle) IsUp() bool {
	return c.Close >= c.Open
}

func NewCandles(bars types.BarSlice) []Candle {
	candles := make([]Candle, len(bars))
	for i, b := range bars {
		candles[i] = Candle{Index: i, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close}
	}
	return candles
}

// CandleDrawer paints the candles on top of the chart after the series pass.
// It must share its ranges with the chart axes so both use the same scales.
type CandleDrawer struct {
	Candles []Candle

	XRange *chart.ContinuousRange
	YRange *chart.ContinuousRange

	UpColor   drawing.Color
	DownColor drawing.Color

	// Skipped counts the candles left out of the last Render call
	Skipped int
}

var _ chart.Renderable = (&CandleDrawer{}).Render

// BodyWidth is the pixel width of a candle body for the given plot width.
func (d *CandleDrawer) BodyWidth(plotWidth int) float64 {
	if len(d.Candles) == 0 {
		return minCandleWidth
	}
	return math.Max(float64(plotWidth)/float64(len(d.Candles))*candleOccupancy, minCandleWidth)
}

func (d *CandleDrawer) Render(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
	d.Skipped = 0
	bodyWidth := d.BodyWidth(canvasBox.Width())

	for _, c := range d.Candles {
		x, okX := translate(d.XRange, float64(c.Index))
		openY, okO := translate(d.YRange, c.Open)
		closeY, okC := translate(d.YRange, c.Close)
		highY, okH := translate(d.YRange, c.High)
		lowY, okL := translate(d.YRange, c.Low)
		if !(okX && okO && okC && okH && okL) {
			d.Skipped++
			log.Warnf("invalid candle value at index %d: %+v", c.Index, c)
			continue
		}

		x += canvasBox.Left
		openY = canvasBox.Bottom - openY
		closeY = canvasBox.Bottom - closeY
		highY = canvasBox.Bottom - highY
		lowY = canvasBox.Bottom - lowY

		color := d.DownColor
		if c.IsUp() {
			color = d.UpColor
		}

		// wick
		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		r.SetStrokeDashArray(nil)
		r.MoveTo(x, highY)
		r.LineTo(x, lowY)
		r.Stroke()

		top := minInt(openY, closeY)
		bottom := maxInt(openY, closeY)
		if bottom-top < minCandleBodyHeight {
			bottom = top + minCandleBodyHeight
		}

		left := int(math.Round(float64(x) - bodyWidth/2))
		right := int(math.Round(float64(x) + bodyWidth/2))

		r.SetFillColor(color)
		r.SetStrokeColor(color)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()
	}
}

// translate maps a value through the range, ok is false when the value or the range cannot produce a pixel.
func translate(rng *chart.ContinuousRange, value float64) (int, bool) {
	if rng == nil || !types.IsFinite(value) {
		return 0, false
	}

	delta := rng.GetDelta()
	if delta == 0 || !types.IsFinite(delta) {
		return 0, false
	}

	return rng.Translate(value), true
}
