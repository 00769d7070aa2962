package csvsource

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/c9s/chartdesk/pkg/types"
	"github.com/c9s/chartdesk/pkg/util"
)

var log = logrus.WithField("component", "csvsource")

// the first few skipped rows of a load log at warn level, the rest at debug level
const (
	skippedRowWarnThreshold = 5
	skippedRowWarnWindow    = time.Minute
)

// ParseReport is the outcome of one ingestion.
type ParseReport struct {
	// Bars is sorted ascending by date, ties keep their row order
	Bars types.BarSlice

	// Skipped holds one entry per dropped data row
	Skipped []*RowError

	// Rows is the number of non-empty data rows seen, accepted or not
	Rows int
}

// Err combines the skipped-row errors, nil when every row was accepted.
func (r *ParseReport) Err() error {
	var err error
	for _, s := range r.Skipped {
		err = multierr.Append(err, s)
	}
	return err
}

// Parse turns delimited text into an ordered bar sequence. Structural problems fail the
// whole call, bad rows are dropped and logged.
func Parse(text string) (types.BarSlice, error) {
	report, err := ParseWithReport(text)
	if err != nil {
		return nil, err
	}

	return report.Bars, nil
}

// ParseWithReport is Parse with the dropped rows returned to the caller.
func ParseWithReport(text string) (*ParseReport, error) {
	reader, err := NewCSVBarReader(text)
	if err != nil {
		return nil, err
	}

	bars, skipped := reader.ReadAll()

	warner := util.NewBurstLogger(skippedRowWarnThreshold, skippedRowWarnWindow, log)
	for _, s := range skipped {
		warner.Warn(s.Err, "skipping row at line %d: %s", s.Line, s.Raw)
	}
	warner.Summary("rows skipped")

	report := &ParseReport{
		Bars:    types.SortBarsAscending(bars),
		Skipped: skipped,
		Rows:    len(bars) + len(skipped),
	}

	log.Debugf("parsed %d bars from %d rows, %d skipped", len(report.Bars), report.Rows, len(skipped))
	return report, nil
}

// ValidateFileName rejects anything that is not a .csv file before it is read.
func ValidateFileName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return &InvalidFileTypeError{FileName: name}
	}
	return nil
}

// ReadFile validates the file name and parses the file content.
func ReadFile(path string) (*ParseReport, error) {
	if err := ValidateFileName(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return ParseWithReport(string(data))
}
