package ekycValidator

import (
	"regexp"
	"strings"
)

var (
	aadhaarRegex = regexp.MustCompile(`^\d{4} \d{4} \d{4}$`)
	otpRegex     = regexp.MustCompile(`^\d{6}$`)
)

type AadhaarRequest struct {
	AadhaarNumber string `json:"aadhaarNumber"`
	Captcha       string `json:"captcha"`
	Consent       bool   `json:"consent"`
}

type OtpRequest struct {
	TransactionID string `json:"transactionId"`
	Otp           string `json:"otp"`
}

// ValidateAadhaar checks the Aadhaar detail submission. The number must be
// entered as three space-separated groups of four digits; the full number is
// validated here but never persisted.
func ValidateAadhaar(d *AadhaarRequest) map[string]string {
	errors := make(map[string]string)

	d.AadhaarNumber = strings.TrimSpace(d.AadhaarNumber)
	d.Captcha = strings.TrimSpace(d.Captcha)

	if d.AadhaarNumber == "" {
		errors["aadhaarNumber"] = "Aadhaar number is required"
	} else if !aadhaarRegex.MatchString(d.AadhaarNumber) {
		errors["aadhaarNumber"] = "Enter a valid 12-digit Aadhaar number"
	}

	if d.Captcha == "" {
		errors["captcha"] = "CAPTCHA is required"
	} else if len(d.Captcha) != 5 {
		errors["captcha"] = "CAPTCHA must be 5 characters"
	}

	if !d.Consent {
		errors["consent"] = "You must provide consent to proceed"
	}

	return errors
}

// ValidateOtp checks an OTP submission against the format rules only; the
// digest comparison happens in the controller.
func ValidateOtp(d *OtpRequest) map[string]string {
	errors := make(map[string]string)

	d.TransactionID = strings.TrimSpace(d.TransactionID)
	d.Otp = strings.TrimSpace(d.Otp)

	if d.TransactionID == "" {
		errors["transactionId"] = "Transaction id is required"
	}
	if d.Otp == "" {
		errors["otp"] = "OTP is required"
	} else if !otpRegex.MatchString(d.Otp) {
		errors["otp"] = "OTP must be 6 digits"
	}

	return errors
}

// SanitizeAadhaar strips the display spacing from an Aadhaar number.
func SanitizeAadhaar(aadhaar string) string {
	return strings.ReplaceAll(aadhaar, " ", "")
}
