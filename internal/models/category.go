package model

import "time"

// DefaultCategoryColor is the color preselected by the category form.
const DefaultCategoryColor = "#3B82F6"

type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Color     string    `gorm:"size:7;not null" json:"color"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
