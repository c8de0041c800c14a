package dashboardRoutes

import (
	dashboardControllers "ipb/controllers/dashboardControllers"
	"ipb/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard", middleware.JWTMiddleware)

	dashboardGroup.Get("/stats", dashboardControllers.Stats)
	dashboardGroup.Get("/applications", dashboardControllers.Applications)
	dashboardGroup.Get("/recommendations", dashboardControllers.Recommendations)
	dashboardGroup.Get("/events", dashboardControllers.Events)
	dashboardGroup.Get("/progress", dashboardControllers.Progress)
	dashboardGroup.Get("/activity", dashboardControllers.Activity)
}
