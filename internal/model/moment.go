package model

import "time"

// Moment kinds. Kind decides which listing view surfaces the entry.
const (
	MomentGratitude = "gratitude"
	MomentImportant = "important"
)

// Moment is a standalone gratitude or "important" journal entry,
// immutable once created.
type Moment struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"index"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:2000"`
	Kind        string    `gorm:"size:20;index"`
	PhotoPath   *string
	CreatedAt   time.Time
}
