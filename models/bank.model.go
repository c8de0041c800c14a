package models

import (
	"gorm.io/gorm"
)

// BankDetails model, one row per profile. Upserted on conflict instead of
// replaced since only one row ever exists.
type BankDetails struct {
	gorm.Model
	ProfileID       uint   `gorm:"uniqueIndex;not null"`
	IsAadhaarSeeded bool   `gorm:"default:false"`
	AccountNumber   string `gorm:"not null"`
	IFSC            string `gorm:"not null"`
	BankName        string `gorm:"not null"`
	Branch          string `gorm:"not null"`
	HolderName      string `gorm:"default:''"`
}
