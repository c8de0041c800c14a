package profileController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ipb/config"
	"ipb/database"
	"ipb/middleware"
	"ipb/models"
	"ipb/utils"
	"ipb/validators/profileValidator"
)

// SendEmailOTP issues a verification code for the submitted email and resets
// the profile's verified flag until the code is confirmed. Resending
// overwrites the stored digest and expiry for the same (user, email) pair.
func SendEmailOTP(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to request an email OTP.", nil)
	}

	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	email := profileValidator.NormalizeEmail(reqData.Email)
	if !profileValidator.IsValidEmail(email) {
		return middleware.ValidationErrorResponse(c, map[string]string{"email": "Invalid email format"})
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Send email OTP error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP. Please check your email address.", nil)
	}

	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(time.Duration(config.AppConfig.EmailOtpExpiryMinutes) * time.Minute)

	var record models.EmailOTP
	err = db.Where("user_id = ? AND email = ?", userId, email).First(&record).Error
	switch err {
	case nil:
		record.OtpHash = utils.HashOTP(otp)
		record.ExpiresAt = expiresAt
		err = db.Save(&record).Error
	case gorm.ErrRecordNotFound:
		record = models.EmailOTP{
			UserID:    userId,
			Email:     email,
			OtpHash:   utils.HashOTP(otp),
			ExpiresAt: expiresAt,
		}
		err = db.Create(&record).Error
	}
	if err != nil {
		log.Printf("Send email OTP error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP. Please check your email address.", nil)
	}

	// The claimed email is recorded immediately, unverified until confirmed
	profile.Email = email
	profile.IsEmailVerified = false
	profile.EmailVerifiedAt = nil
	if err := db.Save(profile).Error; err != nil {
		log.Printf("Send email OTP error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP. Please check your email address.", nil)
	}

	if err := utils.SendOTPEmail(otp, email); err != nil {
		log.Printf("Error delivering email OTP: %v", err)
	}

	data := fiber.Map{}
	if config.AppConfig.Env != "production" {
		data["mockOTP"] = otp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully to your email", data)
}

// VerifyEmailOTP confirms the code. The verified-flag flip and the OTP row
// deletion happen in one transaction so a code can never be replayed.
func VerifyEmailOTP(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before verifying the OTP.", nil)
	}

	reqData := new(profileValidator.EmailVerificationData)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := profileValidator.ValidateEmailVerification(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db
	profile, err := ensureProfile(db, userId)
	if err != nil {
		log.Printf("Verify email OTP error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "OTP verification failed", nil)
	}

	// Lookup, expiry check, digest check and the consume all run inside one
	// transaction. The row delete doubles as the replay guard: only the
	// request that actually removes the row gets to flip the verified flag.
	failMsg := ""
	err = db.Transaction(func(tx *gorm.DB) error {
		var record models.EmailOTP
		if err := tx.Where("user_id = ? AND email = ?", userId, reqData.Email).First(&record).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				failMsg = "OTP expired or not requested. Please resend OTP."
				return nil
			}
			return err
		}

		if record.ExpiresAt.Before(time.Now()) {
			failMsg = "OTP expired. Please request a new OTP."
			return tx.Unscoped().Delete(&record).Error
		}

		if utils.HashOTP(reqData.Otp) != record.OtpHash {
			failMsg = "Invalid OTP. Please try again."
			return nil
		}

		consumed, err := consumeEmailOTP(tx, record.ID)
		if err != nil {
			return err
		}
		if !consumed {
			failMsg = "OTP expired or not requested. Please resend OTP."
			return nil
		}

		now := time.Now()
		profile.Email = reqData.Email
		profile.IsEmailVerified = true
		profile.EmailVerifiedAt = &now
		return tx.Save(profile).Error
	})
	if err != nil {
		log.Printf("Verify email OTP error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "OTP verification failed", nil)
	}
	if failMsg != "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, failMsg, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully", fiber.Map{
		"email": reqData.Email,
	})
}

// consumeEmailOTP removes the OTP row and reports whether this caller was the
// one that removed it. A zero row count means another request already spent
// the code.
func consumeEmailOTP(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Unscoped().Where("id = ?", id).Delete(&models.EmailOTP{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
