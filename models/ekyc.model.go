package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EkycMethodAadhaar    = "aadhaar"
	EkycMethodDigiLocker = "digilocker"

	EkycStatusPending  = "pending"
	EkycStatusVerified = "verified"
	EkycStatusFailed   = "failed"
)

// EkycVerification tracks one identity verification attempt per (user, method).
// While an Aadhaar OTP is outstanding the row carries the OTP digest and its
// absolute expiry; both are cleared on successful verification and replaced by
// the identity attributes returned by the provider, serialized into
// VerificationData. The full Aadhaar number is never stored, only its last four
// digits.
type EkycVerification struct {
	gorm.Model
	UserID              uint   `gorm:"not null;uniqueIndex:idx_user_ekyc_method"`
	Method              string `gorm:"not null;uniqueIndex:idx_user_ekyc_method"` // aadhaar, digilocker
	Status              string `gorm:"default:'pending'"`
	TransactionID       string `gorm:"index;default:''"`
	AadhaarLastFour     string `gorm:"size:4;default:''"`
	DigilockerReference string `gorm:"default:''"`
	ConsentGiven        bool   `gorm:"default:false"`
	OtpHash             string `gorm:"size:64;default:''"`
	OtpExpiresAt        *time.Time
	VerificationData    string `gorm:"type:text;default:''"` // JSON identity attributes once verified
	VerifiedAt          *time.Time
}
