package timer

import (
	"io"
	"log"

	"github.com/marwan404/StudyHub/internal/model"
)

// Bell rings the terminal bell when a phase completes.
type Bell struct {
	Out io.Writer
}

func (b Bell) PhaseComplete(phase model.Phase) {
	if b.Out == nil {
		return
	}
	if _, err := io.WriteString(b.Out, "\a"); err != nil {
		log.Printf("pomodoro: ring bell after %s: %v", phase, err)
	}
}

// Notifiers calls every notifier in order.
type Notifiers []Notifier

func (n Notifiers) PhaseComplete(phase model.Phase) {
	for _, notifier := range n {
		notifier.PhaseComplete(phase)
	}
}

// Displays calls every display sink in order.
type Displays []DisplaySink

func (d Displays) Display(display Display) {
	for _, sink := range d {
		sink.Display(display)
	}
}
