package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ipb/database"
	"ipb/models"
)

// InitializeCleanupScheduler starts the hourly job that removes expired email
// OTP rows and fails eKYC transactions that have been stuck pending long
// after their OTP lapsed.
func InitializeCleanupScheduler() {
	log.Println("[CLEANUP-SCHEDULER] Initializing OTP cleanup scheduler...")

	c := cron.New()

	c.AddFunc("0 * * * *", func() {
		PurgeExpiredEmailOTPs()
		ExpireStaleEkycVerifications()
	})

	c.Start()
	log.Println("[CLEANUP-SCHEDULER] OTP cleanup scheduler started - runs hourly")
}

// PurgeExpiredEmailOTPs deletes email verification codes past their expiry.
// An expired row would be rejected at verify time anyway; this keeps the
// table from accumulating dead codes.
func PurgeExpiredEmailOTPs() {
	db := database.Database.Db

	result := db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.EmailOTP{})
	if result.Error != nil {
		log.Printf("[CLEANUP-SCHEDULER] Failed to purge expired email OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP-SCHEDULER] Purged %d expired email OTP(s)", result.RowsAffected)
	}
}

// ExpireStaleEkycVerifications marks pending eKYC rows as failed once their
// OTP expired more than a day ago, clearing the stored digest.
func ExpireStaleEkycVerifications() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&models.EkycVerification{}).
		Where("status = ? AND otp_expires_at IS NOT NULL AND otp_expires_at < ?", models.EkycStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":         models.EkycStatusFailed,
			"otp_hash":       "",
			"otp_expires_at": nil,
		})
	if result.Error != nil {
		log.Printf("[CLEANUP-SCHEDULER] Failed to expire stale eKYC verifications: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP-SCHEDULER] Expired %d stale eKYC verification(s)", result.RowsAffected)
	}
}
