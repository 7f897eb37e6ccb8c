package dates

import "time"

// Layout is the only date format routes carry, both in the date field
// and inside the composite route id.
const Layout = "2006-01-02"

// HasPassed reports whether the given YYYY-MM-DD date is strictly before
// today. Dates in any other format return the parse error.
func HasPassed(date string) (bool, error) {
	given, err := time.Parse(Layout, date)
	if err != nil {
		return false, err
	}
	today := time.Now().Format(Layout)
	return given.Format(Layout) < today, nil
}
