package csvsource

import (
	"regexp"
	"strconv"
	"time"
)

type datePattern struct {
	name   string
	re     *regexp.Regexp
	layout func(m []string) (day, month, year string)
}

// The ambiguous patterns always read the first group as the day. Whether a first group
// of 12 or less should be read as a month is still an open question, see TestParseDate_Ambiguous.
var datePatterns = []datePattern{
	{
		name: "DD-MM-YYYY",
		re:   regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`),
		layout: func(m []string) (string, string, string) {
			return m[1], m[2], m[3]
		},
	},
	{
		name: "YYYY-MM-DD",
		re:   regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),
		layout: func(m []string) (string, string, string) {
			return m[3], m[2], m[1]
		},
	},
	{
		name: "DD/MM/YYYY",
		re:   regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`),
		layout: func(m []string) (string, string, string) {
			return m[1], m[2], m[3]
		},
	},
}

// ParseDate parses one of the accepted date literals into a zone-naive date (UTC wall clock).
// Out-of-range day or month values roll over into the adjacent month or year, so
// "02-13-2024" becomes 2025-01-02.
func ParseDate(s string) (time.Time, error) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		ds, ms, ys := p.layout(m)
		d, _ := strconv.Atoi(ds)
		mo, _ := strconv.Atoi(ms)
		y, _ := strconv.Atoi(ys)

		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, &DateFormatError{Input: s}
}
