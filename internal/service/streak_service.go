package service

import (
	"context"
	"log"
	"time"

	"github.com/marwan404/StudyHub/internal/calendar"
	apperrors "github.com/marwan404/StudyHub/internal/errors"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
	"github.com/marwan404/StudyHub/internal/streak"
)

type StreakService struct {
	repo  *repository.StreakRepository
	clock func() time.Time
}

func NewStreakService(repo *repository.StreakRepository, clock func() time.Time) *StreakService {
	if clock == nil {
		clock = time.Now
	}
	return &StreakService{repo: repo, clock: clock}
}

// CheckIn records a visit for today. It runs once per launch and never fails:
// an unreadable record starts a new streak and a failed save is only logged.
func (s *StreakService) CheckIn(ctx context.Context) model.StreakRecord {
	record, err := s.repo.Load(ctx)
	if err != nil {
		log.Printf("streak: %v", err)
		record = model.StreakRecord{}
	}

	next := streak.Check(record, calendar.Day(s.clock()))
	if err := s.repo.Save(ctx, next); err != nil {
		log.Printf("streak: %v", err)
	}
	return next
}

func (s *StreakService) Get(ctx context.Context) (*model.StreakRecord, *apperrors.APIError) {
	record, err := s.repo.Load(ctx)
	if err != nil {
		log.Printf("streak: %v", err)
		return nil, apperrors.Internal("failed to load streak")
	}
	return &record, nil
}
