package service

import (
	"context"
	"log"

	apperrors "github.com/marwan404/StudyHub/internal/errors"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
)

// StudyTimeSource reports the minutes of work credited today.
type StudyTimeSource interface {
	StudyMinutesToday() int
}

type StatsService struct {
	resources *repository.ResourceRepository
	streaks   *repository.StreakRepository
	study     StudyTimeSource
}

func NewStatsService(resources *repository.ResourceRepository, streaks *repository.StreakRepository, study StudyTimeSource) *StatsService {
	return &StatsService{
		resources: resources,
		streaks:   streaks,
		study:     study,
	}
}

func (s *StatsService) Get(ctx context.Context) (*model.Stats, *apperrors.APIError) {
	count, visits, err := s.resources.Totals(ctx)
	if err != nil {
		log.Printf("stats: %v", err)
		return nil, apperrors.Internal("failed to compute stats")
	}

	record, err := s.streaks.Load(ctx)
	if err != nil {
		log.Printf("stats: %v", err)
		record = model.StreakRecord{}
	}

	stats := model.Stats{
		TotalResources: count,
		TotalVisits:    visits,
		CurrentStreak:  record.Current,
		LongestStreak:  record.Longest,
	}
	if s.study != nil {
		stats.StudyMinutesToday = s.study.StudyMinutesToday()
	}
	return &stats, nil
}
