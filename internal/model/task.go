package model

import "time"

// Task is a template entry in the weekly catalog. It binds either to a
// weekday ("Monday".."Sunday") or, when Extra is set, to every day.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	Description string `gorm:"size:200;not null"`
	Weekday     string `gorm:"size:20;index"`
	Extra       bool   `gorm:"default:false"`
	CreatedAt   time.Time

	Occurrences []TaskOccurrence `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
