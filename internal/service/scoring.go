package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dualtrack/internal/metrics"
	"dualtrack/internal/model"
	"dualtrack/internal/repository"
)

// Score compares the robot track against the user track for one day.
// The robot completes everything by definition, so Robot counts every
// occurrence and Delta is never positive.
type Score struct {
	Robot int `json:"robot_points"`
	User  int `json:"user_points"`
	Delta int `json:"delta"`
}

// ScoringService marks occurrences complete and tallies points.
type ScoringService struct {
	taskRepo      *repository.TaskRepository
	occRepo       *repository.OccurrenceRepository
	pointsPerTask int
}

func NewScoringService(taskRepo *repository.TaskRepository, occRepo *repository.OccurrenceRepository, pointsPerTask int) *ScoringService {
	if pointsPerTask <= 0 {
		pointsPerTask = 15
	}
	return &ScoringService{taskRepo: taskRepo, occRepo: occRepo, pointsPerTask: pointsPerTask}
}

// Complete transitions one occurrence from incomplete to complete.
// Completing an already-complete occurrence is a no-op that preserves
// the original timestamp.
func (s *ScoringService) Complete(ctx context.Context, occurrenceID uint, completedAt time.Time) (*model.TaskOccurrence, error) {
	occ, err := s.occRepo.FindByID(ctx, occurrenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if occ.Completed {
		return occ, nil
	}

	if err := s.occRepo.MarkCompleted(ctx, occ, completedAt); err != nil {
		return nil, err
	}
	metrics.OccurrencesCompleted.Inc()
	return occ, nil
}

// ScoreDay tallies robot and user points for the given day.
func (s *ScoringService) ScoreDay(ctx context.Context, day time.Time) (Score, error) {
	day = DateOnly(day)

	total, err := s.occRepo.CountByDay(ctx, day)
	if err != nil {
		return Score{}, err
	}
	completed, err := s.occRepo.CountCompletedByDay(ctx, day)
	if err != nil {
		return Score{}, err
	}

	robot := int(total) * s.pointsPerTask
	user := int(completed) * s.pointsPerTask
	return Score{Robot: robot, User: user, Delta: user - robot}, nil
}

// ResetWeek wipes the catalog and all occurrences to start a new week.
func (s *ScoringService) ResetWeek(ctx context.Context) error {
	return s.taskRepo.DeleteAll(ctx)
}
