package models

import (
	"time"

	"gorm.io/gorm"
)

type CalendarEvent struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	Title        string    `gorm:"not null"`
	Date         time.Time `gorm:"not null"`
	Type         string    `gorm:"not null"` // interview, deadline, start_date, assessment
	Description  string    `gorm:"default:''"`
	InternshipID uint      `gorm:"default:0"`
}
