package model

import "time"

type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

const (
	DefaultWorkSeconds       = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60

	// SessionsPerLongBreak is how many completed work phases earn a long break.
	SessionsPerLongBreak = 4
)

// TimerState is the persisted Pomodoro record.
type TimerState struct {
	WorkSeconds         int   `json:"workSeconds"`
	ShortBreakSeconds   int   `json:"shortBreakSeconds"`
	LongBreakSeconds    int   `json:"longBreakSeconds"`
	Phase               Phase `json:"phase"`
	RemainingSeconds    int   `json:"remainingSeconds"`
	SessionsCompleted   int   `json:"sessionsCompleted"`
	IsRunning           bool  `json:"isRunning"`
	LastTickEpochMillis int64 `json:"lastTickEpochMillis"`
	StudyMinutesToday   int   `json:"studyMinutesToday"`
	// LastStudyDay is a local calendar day formatted as YYYY-MM-DD.
	LastStudyDay string `json:"lastStudyDay"`
}

func DefaultTimerState() TimerState {
	return TimerState{
		WorkSeconds:       DefaultWorkSeconds,
		ShortBreakSeconds: DefaultShortBreakSeconds,
		LongBreakSeconds:  DefaultLongBreakSeconds,
		Phase:             PhaseWork,
		RemainingSeconds:  DefaultWorkSeconds,
	}
}

// DurationFor returns the configured length of phase in seconds.
func (s TimerState) DurationFor(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return s.ShortBreakSeconds
	case PhaseLongBreak:
		return s.LongBreakSeconds
	default:
		return s.WorkSeconds
	}
}

func IsValidPhase(phase Phase) bool {
	return phase == PhaseWork || phase == PhaseShortBreak || phase == PhaseLongBreak
}

// PhaseRecord is one completed phase kept for history.
type PhaseRecord struct {
	ID              string    `json:"id"`
	Phase           Phase     `json:"phase"`
	DurationSeconds int       `json:"durationSeconds"`
	SessionNumber   int       `json:"sessionNumber"`
	CompletedAt     time.Time `json:"completedAt"`
}
