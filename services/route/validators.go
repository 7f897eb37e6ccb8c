package route

import (
	"errors"
	"fmt"
	"time"

	"packtravel/dates"
)

const maxDaysAhead = 30

// ValidateDate accepts trip dates from today through 30 days out,
// inclusive on both ends.
func ValidateDate(value string) error {
	given, err := time.Parse(dates.Layout, value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value, err)
	}
	today, _ := time.Parse(dates.Layout, time.Now().Format(dates.Layout))
	if given.Before(today) {
		return errors.New("date cannot be of the past")
	}
	if given.Sub(today) > maxDaysAhead*24*time.Hour {
		return fmt.Errorf("date cannot be more than %d days in the future", maxDaysAhead)
	}
	return nil
}
