package model

import "time"

type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	CategoryID  *string    `gorm:"size:36;index" json:"category_id,omitempty"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Overdue reports whether an open task is past its due date.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && !t.Completed && t.DueDate.Before(now)
}
