package csvsource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooFewLines is returned when the input does not contain a header and at least one data line.
	ErrTooFewLines = errors.New("input must contain a header line and at least one data line")

	// ErrMissingColumn is returned when a required column is absent from the header row.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNotEnoughColumns is returned when a data row is shorter than the columns the header requires.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidNumber is returned when an OHLCV field is empty, malformed or not finite.
	ErrInvalidNumber = errors.New("value must be a finite decimal or scientific number")

	// ErrPriceRelation is returned when high/low do not bound open and close.
	ErrPriceRelation = errors.New("invalid price relationship")

	// ErrNegativeVolume is returned when the volume field is below zero.
	ErrNegativeVolume = errors.New("volume must not be negative")
)

// StructuralError means the whole input is malformed, no bars are produced.
type StructuralError struct {
	Reason  error
	Columns []string
}

func (e *StructuralError) Error() string {
	if len(e.Columns) > 0 {
		return fmt.Sprintf("malformed csv: %v: %s", e.Reason, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("malformed csv: %v", e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return e.Reason
}

// DateFormatError is returned when a date literal matches none of the accepted patterns.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("cannot parse date: %q", e.Input)
}

// RowError describes a single dropped row. Processing continues with the next row.
type RowError struct {
	// Line is the 1-based line number in the source text
	Line int
	Raw  string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("skipping row at line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// InvalidFileTypeError is returned before parsing when the supplied file is not a csv file.
type InvalidFileTypeError struct {
	FileName string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("please upload a CSV file, got %q", e.FileName)
}
