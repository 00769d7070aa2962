package types

import (
	"fmt"
	"strings"
)

type ChartMode string

const (
	ChartModeCandlestick = ChartMode("candlestick")
	ChartModeLine        = ChartMode("line")
	ChartModeArea        = ChartMode("area")
)

func ParseChartMode(s string) (ChartMode, error) {
	switch ChartMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ChartModeCandlestick, "candle", "candles":
		return ChartModeCandlestick, nil
	case ChartModeLine:
		return ChartModeLine, nil
	case ChartModeArea:
		return ChartModeArea, nil
	}

	return "", fmt.Errorf("unsupported chart mode %q", s)
}

func (m ChartMode) String() string {
	return string(m)
}

// Point is a position in surface-pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
