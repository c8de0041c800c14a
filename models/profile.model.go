package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the student's profile row, one per user. Created lazily on the
// first section save and mutated by each section save afterwards.
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Name       string `gorm:"default:''"`
	Dob        *time.Time
	Gender     string `gorm:"default:''"`
	FatherName string `gorm:"default:''"`
	Category   string `gorm:"default:''"` // general, obc, sc, st

	HasDisability  bool   `gorm:"default:false"`
	DisabilityType string `gorm:"default:''"`

	PermanentAddressLine1 string `gorm:"default:''"`
	PermanentAddressLine2 string `gorm:"default:''"`
	PermanentState        string `gorm:"default:''"`
	PermanentDistrict     string `gorm:"default:''"`
	PermanentBlock        string `gorm:"default:''"`
	PermanentVillage      string `gorm:"default:''"`
	PermanentPin          string `gorm:"default:''"`

	CurrentAddressSameAsPermanent bool   `gorm:"default:false"`
	CurrentAddressLine1           string `gorm:"default:''"`
	CurrentAddressLine2           string `gorm:"default:''"`
	CurrentState                  string `gorm:"default:''"`
	CurrentDistrict               string `gorm:"default:''"`
	CurrentBlock                  string `gorm:"default:''"`
	CurrentVillage                string `gorm:"default:''"`
	CurrentPin                    string `gorm:"default:''"`

	Email           string `gorm:"default:''"`
	IsEmailVerified bool   `gorm:"default:false"`
	EmailVerifiedAt *time.Time
	PrimaryMobile   string `gorm:"default:''"`
	AlternateMobile string `gorm:"default:''"`
	PhotoUrl        string `gorm:"default:''"`

	IsComplete  bool `gorm:"default:false"`
	CompletedAt *time.Time

	Educations []Education `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Skills     []Skill     `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Languages  []Language  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}
