// Package streak computes the daily-engagement counter.
package streak

import (
	"github.com/marwan404/StudyHub/internal/calendar"
	"github.com/marwan404/StudyHub/internal/model"
)

// Check applies a visit on today to record and returns the updated record.
// A malformed LastDate is treated as no prior visit.
func Check(record model.StreakRecord, today string) model.StreakRecord {
	next := record

	if record.LastDate == "" {
		next.Current = 1
	} else {
		diff, err := calendar.DaysBetween(record.LastDate, today)
		switch {
		case err != nil:
			next.Current = 1
		case diff == 0:
		case diff == 1:
			next.Current++
		case diff > 1:
			next.Current = 1
		default:
			// Clock moved backwards; keep the count and re-anchor on today.
		}
	}

	if next.Current < 1 {
		next.Current = 1
	}
	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastDate = today
	return next
}
