// Package timeguard validates candidate meeting times against the wall clock.
package timeguard

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	timeOfDay      = "15:04"
	combinedLayout = dateLayout + " " + timeOfDay
)

// IsPastInstant reports whether candidate is strictly earlier than now. The
// comparison uses the full date and time, so a future date with an earlier
// time of day is not past.
func IsPastInstant(candidate, now time.Time) bool {
	return candidate.Before(now)
}

// MinimumTimeOfDay returns the earliest selectable HH:MM for the given date:
// now's time of day when the date is today (in now's location), otherwise
// midnight. The value is advisory, final validation happens on submission.
func MinimumTimeOfDay(date string, now time.Time) string {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return "00:00"
	}
	ny, nm, nd := now.Date()
	dy, dm, dd := d.Date()
	if ny == dy && nm == dm && nd == dd {
		return now.Format(timeOfDay)
	}
	return "00:00"
}

// Combine parses a YYYY-MM-DD date and an HH:MM time of day into a single
// instant in the given location.
func Combine(date, tod string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(combinedLayout, date+" "+tod, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("err parsing date %q time %q: %w", date, tod, err)
	}
	return t, nil
}
