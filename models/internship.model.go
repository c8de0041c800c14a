package models

import (
	"time"

	"gorm.io/gorm"
)

type Internship struct {
	gorm.Model
	Title               string `gorm:"not null"`
	Company             string `gorm:"not null"`
	Description         string `gorm:"type:text;default:''"`
	Requirements        string `gorm:"type:text;default:''"` // comma separated
	Skills              string `gorm:"type:text;default:''"` // comma separated
	Stipend             int    `gorm:"default:0"`
	Duration            string `gorm:"default:''"`
	Location            string `gorm:"default:''"`
	Type                string `gorm:"default:'onsite'"` // remote, onsite, hybrid
	ApplicationDeadline *time.Time
	StartDate           *time.Time
	IsOpen              bool `gorm:"default:true"`
	IsDeleted           bool `gorm:"default:false"`
}
