package cmdutil

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/c9s/chartdesk/pkg/types"
)

// ChartFlags defines the flags selecting the data file and the chart view
func ChartFlags(flags *pflag.FlagSet) {
	flags.String("file", "", "the csv file to load")
	flags.String("range", "", "time range, one of 1D, 5D, 1M, 3M, 6M, YTD, 1Y, 5Y, ALL. defaults to the range picked from the data")
	flags.String("mode", "", "chart mode: candlestick, line or area")
	flags.StringSlice("indicators", nil, "indicators to overlay, e.g. sma20,rsi14")
}

// View reads the flags defined by ChartFlags. Empty values are left zero.
func View(flags *pflag.FlagSet) (file string, timeRange types.TimeRange, mode types.ChartMode, selection types.IndicatorSelection, err error) {
	if file, err = flags.GetString("file"); err != nil {
		return
	}

	r, err := flags.GetString("range")
	if err != nil {
		return
	}
	if r != "" {
		timeRange = types.ParseTimeRange(r)
	}

	m, err := flags.GetString("mode")
	if err != nil {
		return
	}
	if m != "" {
		if mode, err = types.ParseChartMode(m); err != nil {
			return
		}
	}

	indicators, err := flags.GetStringSlice("indicators")
	if err != nil {
		return
	}
	selection, err = types.ParseIndicatorSelection(strings.Join(indicators, ","))
	return
}
