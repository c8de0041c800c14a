package models

import (
	"time"

	"gorm.io/gorm"
)

// EmailOTP holds a pending email verification code. Only the sha256 digest of
// the code is stored; the row is deleted the moment verification succeeds.
type EmailOTP struct {
	gorm.Model
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_email_otp"`
	Email     string    `gorm:"size:100;not null;uniqueIndex:idx_user_email_otp"`
	OtpHash   string    `gorm:"size:64;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
