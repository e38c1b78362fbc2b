package models

import "time"

// AgriculturalEvent is a calendar entry with the farming tasks
// recommended around it. Events are not owned by users.
type AgriculturalEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Season      string    `gorm:"size:20" json:"season"`
	Category    string    `gorm:"size:50" json:"category"`
	Tasks       string    `gorm:"type:text" json:"tasks"`
}
