package ekycController

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ipb/config"
	"ipb/database"
	"ipb/middleware"
	"ipb/models"
	"ipb/utils"
	"ipb/validators/ekycValidator"
)

func requireUser(c *fiber.Ctx) (uint, bool) {
	userId, ok := c.Locals("userId").(uint)
	return userId, ok
}

func findByMethod(db *gorm.DB, userID uint, method string) (*models.EkycVerification, error) {
	var record models.EkycVerification
	err := db.Where("user_id = ? AND method = ?", userID, method).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// VerifyAadhaar handles the verify -> otp transition: the Aadhaar detail
// submission. On success an OTP digest and its absolute expiry are stored on
// the (user, aadhaar) verification row under a fresh transaction id. A second
// attempt reuses the existing row rather than creating a duplicate.
func VerifyAadhaar(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before starting eKYC verification.", nil)
	}

	reqData := new(ekycValidator.AadhaarRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := ekycValidator.ValidateAadhaar(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	sanitized := ekycValidator.SanitizeAadhaar(reqData.AadhaarNumber)
	transactionId := "TXN-" + uuid.NewString()
	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(time.Duration(config.AppConfig.EkycOtpExpiryMinutes) * time.Minute)

	db := database.Database.Db

	record, err := findByMethod(db, userId, models.EkycMethodAadhaar)
	switch err {
	case nil:
		record.TransactionID = transactionId
		record.Status = models.EkycStatusPending
		record.AadhaarLastFour = sanitized[len(sanitized)-4:]
		record.ConsentGiven = reqData.Consent
		record.OtpHash = utils.HashOTP(otp)
		record.OtpExpiresAt = &expiresAt
		err = db.Save(record).Error
	case gorm.ErrRecordNotFound:
		record = &models.EkycVerification{
			UserID:          userId,
			Method:          models.EkycMethodAadhaar,
			Status:          models.EkycStatusPending,
			TransactionID:   transactionId,
			AadhaarLastFour: sanitized[len(sanitized)-4:],
			ConsentGiven:    reqData.Consent,
			OtpHash:         utils.HashOTP(otp),
			OtpExpiresAt:    &expiresAt,
		}
		err = db.Create(record).Error
	}
	if err != nil {
		log.Printf("Aadhaar verification error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Verification failed. Please try again.", nil)
	}

	data := fiber.Map{"transactionId": transactionId}
	if config.AppConfig.Env != "production" {
		data["debugOtp"] = otp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to your Aadhaar-linked mobile number", data)
}

// VerifyOtp handles the otp -> complete transition. A missing or lapsed
// digest is an "expired" failure while a digest mismatch is an "invalid"
// failure; the UI branches on the distinction (resend vs re-enter). On
// success the digest is cleared (one-time use) and the identity attributes
// from the provider take its place.
func VerifyOtp(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before verifying OTP.", nil)
	}

	reqData := new(ekycValidator.OtpRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if errors := ekycValidator.ValidateOtp(reqData); len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db

	var record models.EkycVerification
	if err := db.Where("user_id = ? AND transaction_id = ?", userId, reqData.TransactionID).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired transaction. Please restart verification.", nil)
	}

	if record.OtpHash == "" || record.OtpExpiresAt == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP expired. Please request a new OTP.", nil)
	}

	if record.OtpExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP expired. Please request a new OTP.", nil)
	}

	if utils.HashOTP(reqData.Otp) != record.OtpHash {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid OTP. Please enter the correct 6-digit OTP.", nil)
	}

	identity, err := utils.FetchAadhaarIdentity(record.AadhaarLastFour)
	if err != nil {
		log.Printf("Identity provider error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Identity service temporarily unavailable. Please try again.", nil)
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		log.Printf("OTP verification error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "OTP verification failed. Please try again.", nil)
	}

	// The update is guarded on the stored digest so only one request can spend
	// a given OTP. A concurrent verify that raced past the checks above finds
	// the digest already cleared and is turned away as expired.
	now := time.Now()
	result := db.Model(&models.EkycVerification{}).
		Where("id = ? AND otp_hash = ?", record.ID, record.OtpHash).
		Updates(map[string]interface{}{
			"status":            models.EkycStatusVerified,
			"verified_at":       now,
			"otp_hash":          "",
			"otp_expires_at":    nil,
			"verification_data": string(payload),
		})
	if result.Error != nil {
		log.Printf("OTP verification error: %v", result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "OTP verification failed. Please try again.", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP expired. Please request a new OTP.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Identity verified successfully", fiber.Map{
		"transactionId":        record.TransactionID,
		"userData":             identity,
		"redirectDelaySeconds": config.AppConfig.RedirectDelaySeconds,
	})
}

// ResendOtp reissues the OTP for an existing transaction, overwriting the
// stored digest and expiry.
func ResendOtp(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before requesting a new OTP.", nil)
	}

	reqData := new(struct {
		TransactionID string `json:"transactionId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var record models.EkycVerification
	if err := db.Where("user_id = ? AND transaction_id = ?", userId, reqData.TransactionID).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid transaction. Please restart the verification process.", nil)
	}

	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(time.Duration(config.AppConfig.EkycOtpExpiryMinutes) * time.Minute)

	record.Status = models.EkycStatusPending
	record.OtpHash = utils.HashOTP(otp)
	record.OtpExpiresAt = &expiresAt
	if err := db.Save(&record).Error; err != nil {
		log.Printf("Resend OTP error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resend OTP. Please try again.", nil)
	}

	data := fiber.Map{"transactionId": record.TransactionID}
	if config.AppConfig.Env != "production" {
		data["debugOtp"] = otp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP resent successfully to your registered mobile number", data)
}

// AuthenticateDigiLocker handles the select -> complete shortcut: the whole
// exchange happens inside the external provider, so a single successful call
// lands the row directly in verified. Failures are reported, never retried
// here.
func AuthenticateDigiLocker(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before using DigiLocker.", nil)
	}

	identity, err := utils.AuthenticateDigiLocker(userId)
	if err != nil {
		log.Printf("DigiLocker authentication error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "DigiLocker service temporarily unavailable. Please try again later.", nil)
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		log.Printf("DigiLocker authentication error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "DigiLocker service temporarily unavailable. Please try again later.", nil)
	}

	transactionId := "DLK-" + uuid.NewString()
	now := time.Now()

	db := database.Database.Db

	record, err := findByMethod(db, userId, models.EkycMethodDigiLocker)
	switch err {
	case nil:
		record.TransactionID = transactionId
		record.Status = models.EkycStatusVerified
		record.VerificationData = string(payload)
		record.VerifiedAt = &now
		err = db.Save(record).Error
	case gorm.ErrRecordNotFound:
		record = &models.EkycVerification{
			UserID:              userId,
			Method:              models.EkycMethodDigiLocker,
			Status:              models.EkycStatusVerified,
			TransactionID:       transactionId,
			DigilockerReference: fmt.Sprintf("DGL-%d", now.UnixMilli()),
			ConsentGiven:        true,
			VerificationData:    string(payload),
			VerifiedAt:          &now,
		}
		err = db.Create(record).Error
	}
	if err != nil {
		log.Printf("DigiLocker authentication error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "DigiLocker service temporarily unavailable. Please try again later.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "DigiLocker authentication successful", fiber.Map{
		"transactionId":        transactionId,
		"userData":             identity,
		"redirectDelaySeconds": config.AppConfig.RedirectDelaySeconds,
	})
}

// CheckStatus reports the verification state of a transaction for UI
// polling.
func CheckStatus(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in to view verification status.", nil)
	}

	transactionId := c.Params("transactionId")

	var record models.EkycVerification
	err := database.Database.Db.
		Where("user_id = ? AND transaction_id = ?", userId, transactionId).
		First(&record).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unable to locate verification request. Please restart the process.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("Verification status: %s", record.Status), fiber.Map{
		"transactionId": record.TransactionID,
		"status":        record.Status,
	})
}

// SaveEkycData merges externally-collected verification data onto the
// (user, method) row, creating it when absent.
func SaveEkycData(c *fiber.Ctx) error {
	userId, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You need to sign in before saving eKYC information.", nil)
	}

	reqData := new(struct {
		Method             string                    `json:"method"`
		AadhaarNumber      string                    `json:"aadhaarNumber"`
		VerificationStatus string                    `json:"verificationStatus"`
		VerificationData   *utils.IdentityAttributes `json:"verificationData"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if reqData.Method != models.EkycMethodAadhaar && reqData.Method != models.EkycMethodDigiLocker {
		errors["method"] = "Method must be aadhaar or digilocker"
	}
	switch reqData.VerificationStatus {
	case models.EkycStatusPending, models.EkycStatusVerified, models.EkycStatusFailed:
	default:
		errors["verificationStatus"] = "Status must be pending, verified or failed"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	db := database.Database.Db

	record, err := findByMethod(db, userId, reqData.Method)
	if err == gorm.ErrRecordNotFound {
		record = &models.EkycVerification{
			UserID: userId,
			Method: reqData.Method,
		}
	} else if err != nil {
		log.Printf("Save eKYC data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save eKYC data. Please try again.", nil)
	}

	record.Status = reqData.VerificationStatus
	if sanitized := ekycValidator.SanitizeAadhaar(reqData.AadhaarNumber); len(sanitized) >= 4 {
		record.AadhaarLastFour = sanitized[len(sanitized)-4:]
	}
	if reqData.VerificationData != nil {
		payload, err := json.Marshal(reqData.VerificationData)
		if err == nil {
			record.VerificationData = string(payload)
		}
	}
	if reqData.VerificationStatus == models.EkycStatusVerified && record.VerifiedAt == nil {
		now := time.Now()
		record.VerifiedAt = &now
	}

	if record.ID == 0 {
		err = db.Create(record).Error
	} else {
		err = db.Save(record).Error
	}
	if err != nil {
		log.Printf("Save eKYC data error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save eKYC data. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "eKYC data saved successfully", fiber.Map{
		"id":     record.ID,
		"status": record.Status,
	})
}
