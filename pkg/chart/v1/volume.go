package v1

import (
	"fmt"
	"io"

	"github.com/moznion/go-optional"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartdesk/pkg/indicator"
	"github.com/c9s/chartdesk/pkg/types"
)

// VolumeColors colors a volume bar up when the close did not fall from the previous bar.
// The first bar is always up.
func VolumeColors(bars types.BarSlice) []drawing.Color {
	colors := make([]drawing.Color, len(bars))
	for i := range bars {
		if i == 0 || bars[i].Close >= bars[i-1].Close {
			colors[i] = volumeUpColor
		} else {
			colors[i] = volumeDownColor
		}
	}
	return colors
}

// FormatMillions renders an axis value in millions, e.g. 12000000 as "12M".
func FormatMillions(v float64) string {
	return fmt.Sprintf("%.0fM", v/1e6)
}

// VolumeChart lays out the volume bars below the price chart, sharing its category scale.
func VolumeChart(bars types.BarSlice, width, height int) chart.Chart {
	values := indicator.NewSeries(len(bars))
	for i, b := range bars {
		values[i] = optional.Some(b.Volume)
	}

	max := bars.Volumes().Max()
	if !types.IsFinite(max) || max <= 0 {
		max = 1
	}

	colors := VolumeColors(bars)
	hidden := chart.Style{Hidden: true}

	return chart.Chart{
		Width:      width,
		Height:     height,
		Background: backgroundStyle(),
		Canvas:     backgroundStyle(),
		XAxis: chart.XAxis{
			Style: hidden,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(bars)) - 0.5},
		},
		YAxis: chart.YAxis{
			Style: axisStyle(),
			Range: &chart.ContinuousRange{Min: 0, Max: max * 1.05},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatMillions(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			&HistogramSeries{
				Name:   LabelVolume,
				Style:  chart.Style{FillColor: volumeUpColor},
				YAxis:  chart.YAxisPrimary,
				Values: values,
				ColorFunc: func(i int, _ float64) drawing.Color {
					return colors[i]
				},
			},
		},
	}
}

// RenderVolume writes the volume chart image in the given format.
func RenderVolume(w io.Writer, bars types.BarSlice, format Format, width, height int) error {
	if len(bars) == 0 {
		return ErrNoBars
	}

	c := VolumeChart(bars, width, height)
	return errors.Wrap(c.Render(format.RendererProvider(), w), "unable to render volume chart")
}
