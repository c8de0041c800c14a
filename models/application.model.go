package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationApplied     = "applied"
	ApplicationReviewing   = "reviewing"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
	ApplicationSelected    = "selected"
)

type Application struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	InternshipID uint      `gorm:"index;not null"`
	Status       string    `gorm:"default:'applied'"`
	AppliedDate  time.Time `gorm:"not null"`
	IsDeleted    bool      `gorm:"default:false"`

	Internship Internship `gorm:"foreignKey:InternshipID"`
}
