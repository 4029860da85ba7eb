package courseValidator

import (
	"edhub/middleware"
	"edhub/models"

	"github.com/gofiber/fiber/v2"
)

type EnrollRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	CouponCode    string `json:"couponCode"`
}

type ProgressRequest struct {
	Progress *int `json:"progress"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Enroll validates the enrollment body. Payment method defaults to card.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		// Body is optional for enroll
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if reqData.PaymentMethod == "" {
			reqData.PaymentMethod = models.PaymentMethodCard
		}
		if reqData.PaymentMethod != models.PaymentMethodCard && reqData.PaymentMethod != models.PaymentMethodPaypal {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"paymentMethod": "Payment method must be card or paypal!",
			})
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// UpdateProgress validates the progress update body. An out-of-range value is
// rejected here so stored state is never touched.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Progress == nil {
			errors["progress"] = "Progress is required!"
		} else if *reqData.Progress < 0 || *reqData.Progress > 100 {
			errors["progress"] = "Progress must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// Review validates review submission
func Review() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Rating < 1 || reqData.Rating > 5 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"rating": "Rating must be between 1 and 5!",
			})
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// Pagination validates page/limit query parameters
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 10
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}
