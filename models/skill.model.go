package models

import (
	"gorm.io/gorm"
)

type Skill struct {
	gorm.Model
	ProfileID uint   `gorm:"not null;uniqueIndex:idx_profile_skill"`
	Skill     string `gorm:"not null;uniqueIndex:idx_profile_skill"`
}

type Language struct {
	gorm.Model
	ProfileID   uint   `gorm:"not null;uniqueIndex:idx_profile_language"`
	Name        string `gorm:"not null;uniqueIndex:idx_profile_language"`
	Proficiency string `gorm:"not null"` // basic, intermediate, advanced, native
}
