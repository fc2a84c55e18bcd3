package model

import "time"

// TaskOccurrence is one day's instantiation of a Task. The unique
// (task_id, day) index keeps materialization idempotent even when two
// requests race to build the same day.
type TaskOccurrence struct {
	ID          uint      `gorm:"primaryKey"`
	TaskID      uint      `gorm:"index;index:idx_occurrence_task_day,unique"`
	Day         time.Time `gorm:"index:idx_occurrence_task_day,unique"`
	Completed   bool      `gorm:"default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time

	Task Task
}
