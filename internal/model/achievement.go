package model

import "time"

// Achievement records a reflection written after completing a task.
// TaskID is deliberately unconstrained so journal history survives a
// catalog reset. Entries are append-only.
type Achievement struct {
	ID         uint      `gorm:"primaryKey"`
	Date       time.Time `gorm:"index"`
	TaskID     *uint
	Reflection string `gorm:"size:2000;not null"`
	Feeling    string `gorm:"size:50"`
	PhotoPath  *string
	CreatedAt  time.Time
}
