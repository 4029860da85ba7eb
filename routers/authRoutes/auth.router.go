package authRoutes

import (
	authController "edhub/controllers/auth"
	"edhub/middleware"
	authValidator "edhub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, ctrl *authController.Controller, auth *middleware.Auth) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidator.Register(), ctrl.Register)
	authGroup.Post("/login", authValidator.Login(), ctrl.Login)
	authGroup.Get("/me", auth.Required, ctrl.Me)
}
