package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dualtrack/internal/model"
)

// JournalRepository stores achievements and gratitude moments.
// Both tables are append-only.
type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) CreateAchievement(ctx context.Context, a *model.Achievement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create achievement: %w", err)
	}
	return nil
}

func (r *JournalRepository) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	var entries []model.Achievement
	if err := r.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *JournalRepository) CreateMoment(ctx context.Context, m *model.Moment) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create moment: %w", err)
	}
	return nil
}

// ListMoments returns moments newest first, filtered by kind when kind
// is non-empty.
func (r *JournalRepository) ListMoments(ctx context.Context, kind string) ([]model.Moment, error) {
	q := r.db.WithContext(ctx).Order("date DESC, id DESC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var entries []model.Moment
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
