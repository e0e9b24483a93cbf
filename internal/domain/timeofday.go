package domain

import (
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04"

// TimeOfDay is a 24h wall-clock value in HH:MM form.
type TimeOfDay string

// ParseTimeOfDay accepts "9:00" or "09:00" and returns the zero-padded form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	return TimeOfDay(t.Format(timeOfDayLayout)), nil
}

// Valid reports whether t is in canonical zero-padded HH:MM form.
func (t TimeOfDay) Valid() bool {
	canonical, err := ParseTimeOfDay(string(t))
	return err == nil && canonical == t
}

// Minutes since midnight.
func (t TimeOfDay) Minutes() (int, error) {
	parsed, err := time.Parse(timeOfDayLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, want HH:MM", string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// Before reports whether t is strictly earlier than u. Invalid values are never before anything.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := u.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

func (t TimeOfDay) String() string { return string(t) }
