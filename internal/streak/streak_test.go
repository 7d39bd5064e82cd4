package streak

import (
	"testing"

	"github.com/marwan404/StudyHub/internal/model"
)

func TestCheck(t *testing.T) {
	const today = "2026-10-19"

	tests := []struct {
		name     string
		record   model.StreakRecord
		expected model.StreakRecord
	}{
		{
			name:     "first visit",
			record:   model.StreakRecord{},
			expected: model.StreakRecord{Current: 1, Longest: 1, LastDate: today},
		},
		{
			name:     "same day unchanged",
			record:   model.StreakRecord{Current: 4, Longest: 6, LastDate: today},
			expected: model.StreakRecord{Current: 4, Longest: 6, LastDate: today},
		},
		{
			name:     "yesterday increments",
			record:   model.StreakRecord{Current: 4, Longest: 6, LastDate: "2026-10-18"},
			expected: model.StreakRecord{Current: 5, Longest: 6, LastDate: today},
		},
		{
			name:     "yesterday raises longest",
			record:   model.StreakRecord{Current: 6, Longest: 6, LastDate: "2026-10-18"},
			expected: model.StreakRecord{Current: 7, Longest: 7, LastDate: today},
		},
		{
			name:     "three days ago resets",
			record:   model.StreakRecord{Current: 9, Longest: 9, LastDate: "2026-10-16"},
			expected: model.StreakRecord{Current: 1, Longest: 9, LastDate: today},
		},
		{
			name:     "malformed date resets",
			record:   model.StreakRecord{Current: 3, Longest: 3, LastDate: "not-a-date"},
			expected: model.StreakRecord{Current: 1, Longest: 3, LastDate: today},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.record, today)
			if got != tt.expected {
				t.Fatalf("Check(%+v) = %+v want %+v", tt.record, got, tt.expected)
			}
		})
	}
}
