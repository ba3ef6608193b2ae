package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyResult signals that a filter selection matched zero records. This is
// a valid (if degenerate) state: consumers such as the export sinks use it to
// report "no data" instead of producing empty files.
var ErrEmptyResult = errors.New("no records match the given filter selection")

// DataFormatError is returned when the input dataset does not match the
// expected Superstore format: a required column is missing, or a value cannot
// be coerced to its column's type.
type DataFormatError struct {
	// Row number in the source file (header row is 1). 0 if the error is not
	// tied to a specific row.
	Row int
	// Name of the offending column, or blank if the error concerns the row as
	// a whole.
	Column string
	Cause  error
}

func (err DataFormatError) Error() string {
	switch {
	case err.Row == 0 && err.Column == "":
		return fmt.Sprintf("invalid dataset format: %v", err.Cause)
	case err.Row == 0:
		return fmt.Sprintf("invalid dataset format in column '%s': %v", err.Column, err.Cause)
	case err.Column == "":
		return fmt.Sprintf("invalid dataset format on row %d: %v", err.Row, err.Cause)
	default:
		return fmt.Sprintf(
			"invalid dataset format on row %d, column '%s': %v", err.Row, err.Column, err.Cause,
		)
	}
}

func (err DataFormatError) Unwrap() error {
	return err.Cause
}
