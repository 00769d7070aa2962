package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/config"
)

func writeSampleCSV(t *testing.T, n int) string {
	var sb strings.Builder
	sb.WriteString("Date,Open,High,Low,Close,Volume\n")
	for i := 0; i < n; i++ {
		d := time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC)
		open := 100 + float64(i)
		fmt.Fprintf(&sb, "%s,%.2f,%.2f,%.2f,%.2f,%d\n", d.Format("2006-01-02"), open, open+10, open-5, open+5, 1000+i*100)
	}

	file := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, os.WriteFile(file, []byte(sb.String()), 0644))
	return file
}

func TestChartFormat(t *testing.T) {
	f, err := chartFormat("", "out.svg")
	assert.NoError(t, err)
	assert.Equal(t, chartv1.FormatSVG, f)

	f, err = chartFormat("", "out.png")
	assert.NoError(t, err)
	assert.Equal(t, chartv1.FormatPNG, f)

	f, err = chartFormat("svg", "")
	assert.NoError(t, err)
	assert.Equal(t, chartv1.FormatSVG, f)

	_, err = chartFormat("gif", "")
	assert.Error(t, err)
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", baseURL(":8080"))
	assert.Equal(t, "http://localhost:9090", baseURL("0.0.0.0:9090"))
	assert.Equal(t, "http://127.0.0.1:3000", baseURL("127.0.0.1:3000"))
	assert.Equal(t, "http://localhost:8080", baseURL(""))
}

func TestLoadSession(t *testing.T) {
	userConfig = config.Default()

	_, err := loadSession("")
	assert.Error(t, err)

	sess, err := loadSession(writeSampleCSV(t, 10))
	require.NoError(t, err)
	assert.Len(t, sess.AllBars(), 10)
	assert.Equal(t, "daily.csv", sess.Name())
}

func TestNewBarsTable(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	userConfig = config.Default()
	sess, err := loadSession(writeSampleCSV(t, 3))
	require.NoError(t, err)

	stats, err := sess.Stats()
	require.NoError(t, err)

	out := newBarsTable("daily.csv ALL", sess.Bars(), stats).Render()
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "+5.00 (+5.00%)")
	assert.Contains(t, out, "3 BARS")
	assert.Contains(t, out, "CLOSE")
}

func TestChartCmd(t *testing.T) {
	file := writeSampleCSV(t, 30)
	output := filepath.Join(t.TempDir(), "chart.svg")

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"chart", "--file", file, "--output", output, "--range", "1M", "--indicators", "sma20,rsi14"})
	require.NoError(t, RootCmd.Execute())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<svg")
}

func TestNewBarsTable_SingleBar(t *testing.T) {
	userConfig = config.Default()
	sess, err := loadSession(writeSampleCSV(t, 1))
	require.NoError(t, err)

	stats, err := sess.Stats()
	require.NoError(t, err)

	out := newBarsTable("daily.csv", sess.Bars(), stats).Render()
	assert.Contains(t, out, "1 BAR")
	assert.NotContains(t, out, "1 BARS")
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"version", "--short"})
	require.NoError(t, RootCmd.Execute())
	assert.Equal(t, "v0.1.0-dev\n", buf.String())
}
