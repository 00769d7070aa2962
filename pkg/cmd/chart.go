package cmd

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/cmd/cmdutil"
	"github.com/c9s/chartdesk/pkg/session"
)

func init() {
	cmdutil.ChartFlags(ChartCmd.Flags())
	ChartCmd.Flags().String("output", "", "output image file, the extension picks the format when --format is not given")
	ChartCmd.Flags().String("format", "", "image format: png or svg")
	ChartCmd.Flags().Int("width", 0, "image width, defaults to chart.width of the config")
	ChartCmd.Flags().Int("height", 0, "image height, defaults to chart.height of the config")
	ChartCmd.Flags().Bool("volume", false, "render the volume chart instead of the price chart")
	RootCmd.AddCommand(ChartCmd)
}

// loadSession opens a session with the config defaults and loads the csv file into it
func loadSession(file string) (*session.Session, error) {
	if file == "" {
		return nil, errors.New("--file is required")
	}

	options, err := userConfig.SessionOptions()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", file)
	}

	sess := session.New(filepath.Base(file), options)
	report, err := sess.Load(filepath.Base(file), string(content))
	if err != nil {
		return nil, err
	}

	for _, row := range report.Skipped {
		log.Debugf("skipped line %d: %v", row.Line, row.Err)
	}
	return sess, nil
}

// chartFormat resolves the image format from the flag or the output file extension
func chartFormat(format, output string) (chartv1.Format, error) {
	if format == "" {
		switch filepath.Ext(output) {
		case ".svg":
			format = string(chartv1.FormatSVG)
		default:
			format = string(chartv1.FormatPNG)
		}
	}
	return chartv1.ParseFormat(format)
}

var ChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "render the chart of a csv file into an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, timeRange, mode, selection, err := cmdutil.View(cmd.Flags())
		if err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		formatName, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		width, err := cmd.Flags().GetInt("width")
		if err != nil {
			return err
		}

		height, err := cmd.Flags().GetInt("height")
		if err != nil {
			return err
		}

		volume, err := cmd.Flags().GetBool("volume")
		if err != nil {
			return err
		}

		format, err := chartFormat(formatName, output)
		if err != nil {
			return err
		}

		if output == "" {
			output = "chart." + string(format)
		}

		sess, err := loadSession(file)
		if err != nil {
			return err
		}

		if timeRange != "" {
			sess.SetTimeRange(timeRange)
		}

		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "unable to create %s", output)
		}
		defer f.Close()

		w := bufio.NewWriter(f)
		if volume {
			if width == 0 || height == 0 {
				width, height = userConfig.Chart.Width, 96
			}
			err = sess.RenderVolume(w, format, width, height)
		} else {
			view := session.View{Mode: mode, Selection: selection, Indicators: cmd.Flags().Changed("indicators")}
			err = sess.RenderChart(w, view, format, width, height)
		}
		if err != nil {
			return err
		}

		if err := w.Flush(); err != nil {
			return errors.Wrapf(err, "unable to write %s", output)
		}

		log.Infof("chart of %s (%s) written to %s", file, sess.TimeRange(), output)
		return nil
	},
}
