package timer

import (
	"fmt"

	"github.com/marwan404/StudyHub/internal/model"
)

// Display is the snapshot pushed to display sinks on every tick and transition.
type Display struct {
	Remaining         string      `json:"remaining"`
	Label             string      `json:"label"`
	Phase             model.Phase `json:"phase"`
	RemainingSeconds  int         `json:"remainingSeconds"`
	SessionsCompleted int         `json:"sessionsCompleted"`
	StudyMinutesToday int         `json:"studyMinutesToday"`
	IsRunning         bool        `json:"isRunning"`
}

// FormatRemaining renders seconds as MM:SS. Minutes are not wrapped at an hour.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func PhaseLabel(phase model.Phase) string {
	switch phase {
	case model.PhaseShortBreak:
		return "Short Break!"
	case model.PhaseLongBreak:
		return "Long Break!"
	default:
		return "Work Time!"
	}
}

func NewDisplay(state model.TimerState) Display {
	return Display{
		Remaining:         FormatRemaining(state.RemainingSeconds),
		Label:             PhaseLabel(state.Phase),
		Phase:             state.Phase,
		RemainingSeconds:  state.RemainingSeconds,
		SessionsCompleted: state.SessionsCompleted,
		StudyMinutesToday: state.StudyMinutesToday,
		IsRunning:         state.IsRunning,
	}
}
