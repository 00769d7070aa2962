package style

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	UpColor   = color.New(color.FgHiGreen)
	DownColor = color.New(color.FgHiRed)
	FlatColor = color.New(color.FgWhite)
)

// ChangeColor picks the color of a price change by its sign.
func ChangeColor(change float64) *color.Color {
	switch {
	case change > 0:
		return UpColor
	case change < 0:
		return DownColor
	}
	return FlatColor
}

// ChangeSignString formats a change with an explicit sign, e.g. "+5.00".
func ChangeSignString(change float64, precision int) string {
	return fmt.Sprintf("%+.*f", precision, change)
}

// Change renders a signed change with its percentage in the color of its sign,
// e.g. "+5.00 (+5.00%)".
func Change(change, percentage float64) string {
	return ChangeColor(change).Sprintf("%s (%s%%)", ChangeSignString(change, 2), ChangeSignString(percentage*100, 2))
}
