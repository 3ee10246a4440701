package level

import (
	"fmt"
	"time"
)

// UnknownLevelError reports a level name that is not in the table. It
// signals corrupted external score data and is never papered over with a
// default.
type UnknownLevelError struct {
	Name string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("level: unknown level %q", e.Name)
}

// InvalidDateError reports a last-tested date that lies after today.
// Dates are never silently clamped.
type InvalidDateError struct {
	LastTested time.Time
	Today      time.Time
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("level: last tested %s is after today %s",
		e.LastTested.Format("2006-01-02"), e.Today.Format("2006-01-02"))
}
