/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All sentinel errors in one place. The engines themselves never fail:
  missing configuration resolves to an empty or zero result. Errors here
  belong to the boundaries around the engines - persistence lookups and
  caller-supplied input that cannot be parsed into valid calendar values.

USAGE:
  if errors.Is(err, payroll.ErrJobNotFound) { ... }
*/
package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned by stores for a point lookup that matched
	// no job.
	ErrJobNotFound = errors.New("job not found")

	// ErrShiftNotFound is returned by stores for a point lookup that
	// matched no shift.
	ErrShiftNotFound = errors.New("shift not found")
)

// IsNotFound reports whether err is any of the missing-record sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound) || errors.Is(err, ErrShiftNotFound)
}

// InvalidDateError marks caller-supplied calendar input that could not be
// constructed. It is fatal at the boundary where the date is parsed; the
// engines only ever receive already-valid dates.
type InvalidDateError struct {
	Input string
	Cause error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Input, e.Cause)
}

func (e *InvalidDateError) Unwrap() error { return e.Cause }
