package models

import (
	"gorm.io/gorm"
)

// Education rows are replaced wholesale on every save, never patched.
type Education struct {
	gorm.Model
	ProfileID uint   `gorm:"index;not null"`
	Level     string `gorm:"not null"` // 10th, 12th, diploma, graduation, postgraduation
	Subject   string `gorm:"default:''"`
	Board     string `gorm:"not null"`
	Institute string `gorm:"not null"`
	// Year of passing, bounded to [1950, currentYear+1] at validation time
	YearOfPassing int    `gorm:"not null"`
	MarksType     string `gorm:"not null"` // percentage, cgpa, grade
	MarksValue    string `gorm:"not null"`

	CertificateUrl      string `gorm:"default:''"`
	CertificateFileName string `gorm:"default:''"`
	CertificateFileSize int    `gorm:"default:0"`
}
