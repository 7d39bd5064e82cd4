package service

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "github.com/marwan404/StudyHub/internal/errors"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
	"github.com/marwan404/StudyHub/internal/timer"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// PomodoroService exposes the single timer controller to the HTTP layer.
type PomodoroService struct {
	controller *timer.Controller
	repo       *repository.PomodoroRepository
	events     *timer.Broadcaster
}

type StateView struct {
	model.TimerState
	Remaining  string    `json:"remaining"`
	Label      string    `json:"label"`
	ServerTime time.Time `json:"serverTime"`
}

func NewPomodoroService(controller *timer.Controller, repo *repository.PomodoroRepository, events *timer.Broadcaster) *PomodoroService {
	return &PomodoroService{
		controller: controller,
		repo:       repo,
		events:     events,
	}
}

func (s *PomodoroService) GetState(ctx context.Context) (*StateView, *apperrors.APIError) {
	s.controller.RollStudyDay()
	return s.view(), nil
}

// Start is idempotent: starting a running timer returns the current state.
func (s *PomodoroService) Start(ctx context.Context) (*StateView, *apperrors.APIError) {
	s.controller.Start()
	return s.view(), nil
}

func (s *PomodoroService) Pause(ctx context.Context) (*StateView, *apperrors.APIError) {
	s.controller.Pause()
	return s.view(), nil
}

func (s *PomodoroService) Reset(ctx context.Context) (*StateView, *apperrors.APIError) {
	s.controller.Reset()
	return s.view(), nil
}

// UpdateSettings changes one phase length and resets the timer.
func (s *PomodoroService) UpdateSettings(ctx context.Context, kind, minutes string) (*StateView, *apperrors.APIError) {
	if err := s.controller.ChangeDuration(kind, minutes); err != nil {
		var validationErr *timer.ValidationError
		if errors.As(err, &validationErr) {
			return nil, apperrors.Invalid("invalid_duration", validationErr.Error(), map[string]string{
				"field": validationErr.Field,
				"value": validationErr.Value,
			})
		}
		log.Printf("pomodoro: change duration: %v", err)
		return nil, apperrors.Internal("failed to update settings")
	}
	return s.view(), nil
}

func (s *PomodoroService) GetHistory(ctx context.Context, limit int) ([]model.PhaseRecord, *apperrors.APIError) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	records, err := s.repo.ListPhases(ctx, limit)
	if err != nil {
		log.Printf("pomodoro: list history: %v", err)
		return nil, apperrors.Internal("failed to get history")
	}
	return records, nil
}

// Subscribe returns a stream of display snapshots and phase completions.
func (s *PomodoroService) Subscribe(buffer int) (<-chan timer.Event, func()) {
	return s.events.Subscribe(buffer)
}

// StudyMinutesToday reports the study time credited today, rolling the day first.
func (s *PomodoroService) StudyMinutesToday() int {
	s.controller.RollStudyDay()
	return s.controller.State().StudyMinutesToday
}

func (s *PomodoroService) view() *StateView {
	state := s.controller.State()
	display := timer.NewDisplay(state)
	return &StateView{
		TimerState: state,
		Remaining:  display.Remaining,
		Label:      display.Label,
		ServerTime: time.Now().UTC(),
	}
}
