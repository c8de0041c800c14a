package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	JWTKey    string
	SaltRound int

	SendGridApiKey string
	EmailSender    string
	EmailPassword  string // SMTP fallback password

	IfscApiURL string // Razorpay IFSC lookup base URL

	EkycOtpExpiryMinutes  int
	EmailOtpExpiryMinutes int
	RedirectDelaySeconds  int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		Env:       getEnv("APP_ENV", "development"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@internportal.in"),
		EmailPassword:  getEnv("EMAIL_PASSWORD", ""),

		IfscApiURL: getEnv("IFSC_API_URL", "https://ifsc.razorpay.com/"),

		EkycOtpExpiryMinutes:  getEnvInt("EKYC_OTP_EXPIRY_MINUTES", 5),
		EmailOtpExpiryMinutes: getEnvInt("EMAIL_OTP_EXPIRY_MINUTES", 10),
		RedirectDelaySeconds:  getEnvInt("EKYC_REDIRECT_DELAY_SECONDS", 3),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridApiKey == "" && AppConfig.EmailPassword == "" {
		log.Println("Warning: No email credentials configured. OTP emails will only be logged.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
