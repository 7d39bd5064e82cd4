// Package calendar normalizes wall-clock instants to local calendar days.
// The streak tracker and the study-time accumulator both compare days through
// this package so they truncate the same way.
package calendar

import (
	"fmt"
	"math"
	"time"
)

const dayLayout = "2006-01-02"

// Day formats t as the calendar day it falls on in its own location.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// Parse reads a day produced by Day, anchored at midnight in loc.
func Parse(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	return t, nil
}

// DaysBetween counts whole calendar days from one day to another.
// The result is negative when to precedes from.
func DaysBetween(from, to string) (int, error) {
	start, err := Parse(from, time.UTC)
	if err != nil {
		return 0, err
	}
	end, err := Parse(to, time.UTC)
	if err != nil {
		return 0, err
	}
	return int(math.Round(end.Sub(start).Hours() / 24)), nil
}
