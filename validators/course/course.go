package courseValidator

import (
	"strconv"
	"strings"

	"edhub/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url"`
	InstructorID uint    `json:"instructor_id"` // optional, admin only
}

type UpdateCourseRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Price        *float64 `json:"price"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

type CreateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

type UpdateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"order_index"`
}

type UpdateLessonRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	TextContent string `json:"text_content"`
	VideoURL    string `json:"video_url"`
	Duration    *int   `json:"duration"`
	OrderIndex  *int   `json:"order_index"`
}

type CreateLessonRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	TextContent string `json:"text_content"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration"`
	OrderIndex  int    `json:"order_index"`
}

type ListQuery struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// idParam validates a positive integer route parameter and stores it in Locals
func idParam(name, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(name))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+name+" parameter!", nil)
		}
		c.Locals(local, uint(id))
		return c.Next()
	}
}

// CourseID validates the :id course route parameter
func CourseID() fiber.Handler {
	return idParam("id", "courseID")
}

// ModuleID validates the :id module route parameter
func ModuleID() fiber.Handler {
	return idParam("id", "moduleID")
}

// LessonID validates the :id lesson route parameter
func LessonID() fiber.Handler {
	return idParam("id", "lessonID")
}

// CreateCourse validates the course creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the partial course update body
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateModule validates the module creation body
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateLesson validates the lesson creation body
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			errors["title"] = "Title is required!"
		}
		if reqData.ContentType == "" {
			reqData.ContentType = "TEXT"
		}
		if reqData.ContentType != "TEXT" && reqData.ContentType != "VIDEO" {
			errors["content_type"] = "Content type must be TEXT or VIDEO!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateModule validates the module update body
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title cannot be blank!"})
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// UpdateLesson validates the lesson update body
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ContentType != "" && reqData.ContentType != "TEXT" && reqData.ContentType != "VIDEO" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content_type": "Content type must be TEXT or VIDEO!",
			})
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// CourseList validates catalog listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := &ListQuery{
			Page:     c.QueryInt("page", 1),
			Limit:    c.QueryInt("limit", 10),
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}

		if q.Page < 1 {
			q.Page = 1
		}
		if q.Limit < 1 || q.Limit > 100 {
			q.Limit = 10
		}

		c.Locals("validatedList", q)
		return c.Next()
	}
}
