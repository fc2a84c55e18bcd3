package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dualtrack/internal/model"
)

// OccurrenceRepository handles daily task occurrences.
type OccurrenceRepository struct {
	db *gorm.DB
}

func NewOccurrenceRepository(db *gorm.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

func (r *OccurrenceRepository) FindByID(ctx context.Context, id uint) (*model.TaskOccurrence, error) {
	var occ model.TaskOccurrence
	if err := r.db.WithContext(ctx).Preload("Task").First(&occ, id).Error; err != nil {
		return nil, err
	}
	return &occ, nil
}

// ListByDay returns the day's occurrences with their tasks preloaded,
// oldest first.
func (r *OccurrenceRepository) ListByDay(ctx context.Context, day time.Time) ([]model.TaskOccurrence, error) {
	var occs []model.TaskOccurrence
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Where("day = ?", day).
		Order("created_at ASC, id ASC").
		Find(&occs).Error; err != nil {
		return nil, err
	}
	return occs, nil
}

// CreateMissing inserts one occurrence per task for the given day in a
// single transaction. Existing (task, day) pairs are left alone: the
// unique index plus ON CONFLICT DO NOTHING makes a second pass, or a
// racing request, a no-op.
func (r *OccurrenceRepository) CreateMissing(ctx context.Context, day time.Time, taskIDs []uint) (int, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	occs := make([]model.TaskOccurrence, 0, len(taskIDs))
	for _, id := range taskIDs {
		occs = append(occs, model.TaskOccurrence{TaskID: id, Day: day})
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(&occs)
	if res.Error != nil {
		return 0, fmt.Errorf("create occurrences: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

// MarkCompleted flips the occurrence to completed. Already-completed
// rows keep their original timestamp.
func (r *OccurrenceRepository) MarkCompleted(ctx context.Context, occ *model.TaskOccurrence, completedAt time.Time) error {
	occ.Completed = true
	occ.CompletedAt = &completedAt
	if err := r.db.WithContext(ctx).
		Model(occ).
		Updates(map[string]interface{}{"completed": true, "completed_at": completedAt}).Error; err != nil {
		return fmt.Errorf("complete occurrence: %w", err)
	}
	return nil
}

func (r *OccurrenceRepository) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.TaskOccurrence{}).
		Where("day = ?", day).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *OccurrenceRepository) CountCompletedByDay(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.TaskOccurrence{}).
		Where("day = ? AND completed = ?", day, true).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteByDay removes every occurrence for the day. Used by the
// shuffle operation under the random policy.
func (r *OccurrenceRepository) DeleteByDay(ctx context.Context, day time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("day = ?", day).
		Delete(&model.TaskOccurrence{}).Error; err != nil {
		return fmt.Errorf("delete occurrences for day: %w", err)
	}
	return nil
}
