// Package timer implements the Pomodoro phase state machine and the logic
// that resumes a running countdown after the process was away.
package timer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/marwan404/StudyHub/internal/calendar"
	"github.com/marwan404/StudyHub/internal/model"
)

// DisplaySink receives a snapshot on every tick and transition.
type DisplaySink interface {
	Display(Display)
}

// Notifier is told once per completed phase. Return values are not consumed.
type Notifier interface {
	PhaseComplete(model.Phase)
}

// Store persists the full timer record after every change.
type Store interface {
	SaveTimer(ctx context.Context, state model.TimerState) error
	RecordPhase(ctx context.Context, record model.PhaseRecord) error
}

// Duration kinds accepted by ChangeDuration.
const (
	KindWork       = "work"
	KindShortBreak = "shortBreak"
	KindLongBreak  = "longBreak"
)

// MaxDurationMinutes caps a single phase at one day.
const MaxDurationMinutes = 24 * 60

// Options contains runtime options for a Controller.
type Options struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	Clock        func() time.Time
	NewID        func() string
}

// Controller owns the timer state and the single countdown that drives it.
// Sinks are called with the controller lock held and must not call back into it.
type Controller struct {
	mu       sync.Mutex
	state    model.TimerState
	store    Store
	display  DisplaySink
	notifier Notifier
	options  Options

	cancel     func()
	generation uint64
}

// NewController wraps a loaded state. Call Resume once afterwards to pick up
// a countdown that was running when the state was saved.
func NewController(state model.TimerState, store Store, display DisplaySink, notifier Notifier, options Options) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}
	if options.NewID == nil {
		options.NewID = func() string { return "" }
	}

	return &Controller{
		state:    Normalize(state),
		store:    store,
		display:  display,
		notifier: notifier,
		options:  options,
	}
}

// State returns a copy of the current record.
func (c *Controller) State() model.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current display snapshot.
func (c *Controller) Snapshot() Display {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewDisplay(c.state)
}

// Resume reconciles a persisted running countdown with the wall clock.
// Long absences clamp to zero and advance exactly one phase.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.options.Clock()
	rolled := c.rollStudyDayLocked(now)

	if !c.state.IsRunning {
		if rolled {
			c.persistLocked(now)
		}
		c.publishLocked()
		return
	}

	elapsed := int((now.UnixMilli() - c.state.LastTickEpochMillis) / 1000)
	if elapsed < 0 {
		elapsed = 0
	}
	c.state.RemainingSeconds -= elapsed
	if c.state.RemainingSeconds < 0 {
		c.state.RemainingSeconds = 0
	}

	// The persisted flag says running but no countdown exists in this process yet.
	c.state.IsRunning = false
	c.startLocked(now)

	if c.state.RemainingSeconds == 0 {
		c.completePhaseLocked(now)
	}
}

// Start begins the countdown. Starting a running timer is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked(c.options.Clock())
}

// Tick advances the countdown by one second.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickLocked(c.generation)
}

// AdvancePhase moves to the next phase and starts it.
func (c *Controller) AdvancePhase() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advancePhaseLocked(c.options.Clock())
}

// Pause stops the countdown and keeps the remaining time.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.IsRunning {
		return
	}
	c.stopCountdownLocked()
	c.state.IsRunning = false
	c.persistLocked(c.options.Clock())
	c.publishLocked()
}

// Reset returns to a fresh work phase and clears the session count.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked(c.options.Clock())
}

// ChangeDuration sets the length of one phase kind from user input in minutes,
// then performs a full reset.
func (c *Controller) ChangeDuration(kind, minutes string) error {
	value, err := strconv.Atoi(strings.TrimSpace(minutes))
	if err != nil {
		return &ValidationError{Field: "duration", Value: minutes, Message: "must be a whole number of minutes"}
	}
	if value < 1 {
		return &ValidationError{Field: "duration", Value: minutes, Message: "must be 1 or greater"}
	}
	if value > MaxDurationMinutes {
		return &ValidationError{Field: "duration", Value: minutes, Message: fmt.Sprintf("must be at most %d", MaxDurationMinutes)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch kind {
	case KindWork:
		c.state.WorkSeconds = value * 60
	case KindShortBreak, string(model.PhaseShortBreak):
		c.state.ShortBreakSeconds = value * 60
	case KindLongBreak, string(model.PhaseLongBreak):
		c.state.LongBreakSeconds = value * 60
	default:
		return &ValidationError{Field: "kind", Value: kind, Message: "must be work, shortBreak or longBreak"}
	}

	c.resetLocked(c.options.Clock())
	return nil
}

// RollStudyDay zeroes the study-minute accumulator when the calendar day changed.
func (c *Controller) RollStudyDay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.options.Clock()
	if !c.rollStudyDayLocked(now) {
		return false
	}
	c.persistLocked(now)
	c.publishLocked()
	return true
}

// Stop cancels the countdown for process shutdown. The running flag stays set
// so the next launch resumes where this one left off.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopCountdownLocked()
	c.persistLocked(c.options.Clock())
}

func (c *Controller) startLocked(now time.Time) {
	if c.state.IsRunning {
		return
	}
	c.state.IsRunning = true
	c.state.LastTickEpochMillis = now.UnixMilli()

	c.generation++
	generation := c.generation
	c.cancel = c.options.Scheduler.Every(c.options.TickInterval, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.tickLocked(generation)
	})

	c.persistLocked(now)
	c.publishLocked()
}

func (c *Controller) tickLocked(generation uint64) {
	if !c.state.IsRunning || generation != c.generation {
		return
	}
	now := c.options.Clock()
	c.rollStudyDayLocked(now)

	c.state.RemainingSeconds--
	if c.state.RemainingSeconds <= 0 {
		c.state.RemainingSeconds = 0
		c.completePhaseLocked(now)
		return
	}

	c.persistLocked(now)
	c.publishLocked()
}

func (c *Controller) completePhaseLocked(now time.Time) {
	finished := c.state.Phase
	session := c.state.SessionsCompleted
	if finished == model.PhaseWork {
		session++
	}

	if c.notifier != nil {
		c.notifier.PhaseComplete(finished)
	}
	if c.store != nil {
		record := model.PhaseRecord{
			ID:              c.options.NewID(),
			Phase:           finished,
			DurationSeconds: c.state.DurationFor(finished),
			SessionNumber:   session,
			CompletedAt:     now.UTC(),
		}
		if err := c.store.RecordPhase(context.Background(), record); err != nil {
			log.Printf("pomodoro: record completed %s phase: %v", finished, err)
		}
	}

	c.advancePhaseLocked(now)
}

func (c *Controller) advancePhaseLocked(now time.Time) {
	c.stopCountdownLocked()
	c.state.IsRunning = false

	if c.state.Phase == model.PhaseWork {
		c.state.SessionsCompleted++
		c.rollStudyDayLocked(now)
		c.state.StudyMinutesToday += c.state.WorkSeconds / 60

		if c.state.SessionsCompleted%model.SessionsPerLongBreak == 0 {
			c.state.Phase = model.PhaseLongBreak
			c.state.RemainingSeconds = c.state.LongBreakSeconds
		} else {
			c.state.Phase = model.PhaseShortBreak
			c.state.RemainingSeconds = c.state.ShortBreakSeconds
		}
	} else {
		c.state.Phase = model.PhaseWork
		c.state.RemainingSeconds = c.state.WorkSeconds
	}

	c.persistLocked(now)
	c.publishLocked()
	c.startLocked(now)
}

func (c *Controller) resetLocked(now time.Time) {
	c.stopCountdownLocked()
	c.state.Phase = model.PhaseWork
	c.state.RemainingSeconds = c.state.WorkSeconds
	c.state.SessionsCompleted = 0
	c.state.IsRunning = false
	c.persistLocked(now)
	c.publishLocked()
}

func (c *Controller) rollStudyDayLocked(now time.Time) bool {
	today := calendar.Day(now)
	if c.state.LastStudyDay == today {
		return false
	}
	c.state.StudyMinutesToday = 0
	c.state.LastStudyDay = today
	return true
}

func (c *Controller) stopCountdownLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
}

func (c *Controller) persistLocked(now time.Time) {
	c.state.LastTickEpochMillis = now.UnixMilli()
	if c.store == nil {
		return
	}
	if err := c.store.SaveTimer(context.Background(), c.state); err != nil {
		log.Printf("pomodoro: save timer state: %v", err)
	}
}

func (c *Controller) publishLocked() {
	if c.display != nil {
		c.display.Display(NewDisplay(c.state))
	}
}

// Normalize repairs a decoded record so the state-machine invariants hold:
// positive durations, a known phase and remaining time within the phase.
func Normalize(state model.TimerState) model.TimerState {
	defaults := model.DefaultTimerState()
	if state.WorkSeconds <= 0 {
		state.WorkSeconds = defaults.WorkSeconds
	}
	if state.ShortBreakSeconds <= 0 {
		state.ShortBreakSeconds = defaults.ShortBreakSeconds
	}
	if state.LongBreakSeconds <= 0 {
		state.LongBreakSeconds = defaults.LongBreakSeconds
	}
	if !model.IsValidPhase(state.Phase) {
		state.Phase = model.PhaseWork
		state.RemainingSeconds = state.WorkSeconds
	}
	if state.RemainingSeconds < 0 {
		state.RemainingSeconds = 0
	}
	if limit := state.DurationFor(state.Phase); state.RemainingSeconds > limit {
		state.RemainingSeconds = limit
	}
	if state.SessionsCompleted < 0 {
		state.SessionsCompleted = 0
	}
	if state.StudyMinutesToday < 0 {
		state.StudyMinutesToday = 0
	}
	return state
}
