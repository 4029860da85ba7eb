package adminRoutes

import (
	adminController "edhub/controllers/admin"
	"edhub/middleware"
	"edhub/models"
	adminValidator "edhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// Setup wires the admin-only analytics and management routes
func Setup(app *fiber.App, ctrl *adminController.Controller, auth *middleware.Auth) {
	adminGroup := app.Group("/api/admin", auth.Required, auth.RequireRoles(models.RoleAdmin))

	adminGroup.Get("/stats", ctrl.Stats)
	adminGroup.Get("/courses/analytics", ctrl.CourseAnalytics)

	adminGroup.Get("/users", ctrl.ListUsers)
	adminGroup.Put("/users/:id", adminValidator.UserID(), adminValidator.UpdateUser(), ctrl.UpdateUser)

	adminGroup.Get("/courses", ctrl.ListCourses)
	adminGroup.Get("/payments", ctrl.ListPayments)
}
