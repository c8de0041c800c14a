package ekycRoutes

import (
	ekycControllers "ipb/controllers/ekycControllers"
	"ipb/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupEkycRoutes(app *fiber.App) {
	ekycGroup := app.Group("/ekyc", middleware.JWTMiddleware)

	ekycGroup.Post("/aadhaar/verify", ekycControllers.VerifyAadhaar)
	ekycGroup.Post("/otp/verify", ekycControllers.VerifyOtp)
	ekycGroup.Post("/otp/resend", ekycControllers.ResendOtp)
	ekycGroup.Post("/digilocker", ekycControllers.AuthenticateDigiLocker)
	ekycGroup.Get("/status/:transactionId", ekycControllers.CheckStatus)
	ekycGroup.Post("/save", ekycControllers.SaveEkycData)
}
