package style

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestChangeColor(t *testing.T) {
	assert.Same(t, UpColor, ChangeColor(1))
	assert.Same(t, DownColor, ChangeColor(-0.5))
	assert.Same(t, FlatColor, ChangeColor(0))
}

func TestChange(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	assert.Equal(t, "+5.00 (+5.00%)", Change(5, 0.05))
	assert.Equal(t, "-3.00 (-2.86%)", Change(-3, -0.0285714))
	assert.Equal(t, "+0.50", ChangeSignString(0.5, 2))
}

func TestNewTableWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTableWriter(&buf, "BARS", table.Row{"Date", "Close"}, 1)
	tw.AppendRow(table.Row{"2024-01-02", "105.00"})
	tw.Render()

	out := buf.String()
	assert.Contains(t, out, "BARS")
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "105.00")
}
