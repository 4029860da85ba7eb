package adminValidator

import (
	"strconv"
	"strings"

	"edhub/middleware"
	"edhub/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateUserRequest struct {
	Role      string `json:"role"`
	IsBlocked *bool  `json:"is_blocked"`
	Name      string `json:"name"`
}

// UserID validates the :id user route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}
		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}

// UpdateUser validates the admin user update body
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Role != "" {
			if _, ok := models.ParseRole(reqData.Role); !ok {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"role": "Role must be student, instructor or admin!",
				})
			}
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}
