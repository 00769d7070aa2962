package cmd

import (
	"fmt"

	"github.com/gertd/go-pluralize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/cmd/cmdutil"
	"github.com/c9s/chartdesk/pkg/session"
	"github.com/c9s/chartdesk/pkg/style"
	"github.com/c9s/chartdesk/pkg/types"
)

func init() {
	cmdutil.ChartFlags(BarsCmd.Flags())
	BarsCmd.Flags().Int("limit", 0, "only print the last n bars")
	RootCmd.AddCommand(BarsCmd)
}

var pluralizer = pluralize.NewClient()

var barsHeader = table.Row{"Date", "Open", "High", "Low", "Close", "Volume", "Change"}

func newBarsTable(title string, bars types.BarSlice, stats session.Stats) table.Writer {
	t := style.NewTableWriter(nil, title, barsHeader, 1)
	for _, b := range bars {
		t.AppendRow(table.Row{
			b.DateStr,
			fmt.Sprintf("%.2f", b.Open),
			fmt.Sprintf("%.2f", b.High),
			fmt.Sprintf("%.2f", b.Low),
			fmt.Sprintf("%.2f", b.Close),
			chartv1.FormatVolume(b.Volume),
			style.Change(b.GetChange(), b.GetChangePercentage()/100.0),
		})
	}

	t.AppendFooter(table.Row{
		pluralizer.Pluralize("bar", stats.Bars, true),
		"",
		fmt.Sprintf("%.2f", stats.High),
		fmt.Sprintf("%.2f", stats.Low),
		fmt.Sprintf("%.2f", stats.LastClose),
		chartv1.FormatVolume(stats.Volume),
		style.Change(stats.Change, stats.ChangePercentage),
	})
	return t
}

var BarsCmd = &cobra.Command{
	Use:   "bars",
	Short: "print the bars of a csv file inside a time range",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, timeRange, _, _, err := cmdutil.View(cmd.Flags())
		if err != nil {
			return err
		}

		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		sess, err := loadSession(file)
		if err != nil {
			return err
		}

		if timeRange != "" {
			sess.SetTimeRange(timeRange)
		}

		stats, err := sess.Stats()
		if err != nil {
			return err
		}

		bars := sess.Bars()
		if limit > 0 && len(bars) > limit {
			bars = bars[len(bars)-limit:]
		}

		t := newBarsTable(fmt.Sprintf("%s %s", stats.Name, stats.TimeRange), bars, stats)
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}
