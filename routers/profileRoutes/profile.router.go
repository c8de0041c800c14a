package profileRoutes

import (
	profileControllers "ipb/controllers/profileControllers"
	"ipb/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile")

	profileGroup.Get("/", middleware.JWTMiddleware, profileControllers.GetProfile)
	profileGroup.Post("/personal", middleware.JWTMiddleware, profileControllers.SavePersonal)
	profileGroup.Post("/contact", middleware.JWTMiddleware, profileControllers.SaveContact)
	profileGroup.Post("/education", middleware.JWTMiddleware, profileControllers.SaveEducation)
	profileGroup.Post("/bank", middleware.JWTMiddleware, profileControllers.SaveBank)
	profileGroup.Post("/skills", middleware.JWTMiddleware, profileControllers.SaveSkills)
	profileGroup.Post("/complete", middleware.JWTMiddleware, profileControllers.SaveCompleteProfile)

	profileGroup.Post("/status", profileControllers.ProfileStatus)
	profileGroup.Post("/validate", profileControllers.ValidateSection)
	profileGroup.Post("/bank/validate-ifsc", profileControllers.ValidateIFSC)

	profileGroup.Post("/email/send-otp", middleware.JWTMiddleware, profileControllers.SendEmailOTP)
	profileGroup.Post("/email/verify-otp", middleware.JWTMiddleware, profileControllers.VerifyEmailOTP)

	profileGroup.Post("/upload/certificate", middleware.JWTMiddleware, profileControllers.UploadCertificate)
}
