package courseController

import (
	"edhub/middleware"
	"edhub/models"
	courseValidator "edhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReview lets an enrolled user review a course once
func (ctrl *Controller) SubmitReview(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedReview").(*courseValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to review this course!", nil)
	}

	// Check if user has already reviewed this course
	var existingReview models.Review
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		UserID:   user.ID,
		CourseID: course.ID,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := ctrl.DB.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	// Refresh the denormalized course rating
	var avgRating float64
	ctrl.DB.Model(&models.Review{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating)
	ctrl.DB.Model(&models.Course{}).Where("id = ?", course.ID).Update("rating", avgRating)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// ListReviews returns a course's reviews with reviewer names
func (ctrl *Controller) ListReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	page, _ := c.Locals("page").(int)
	limit, _ := c.Locals("limit").(int)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var total int64
	ctrl.DB.Model(&models.Review{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Count(&total)

	var reviews []models.Review
	if err := ctrl.DB.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
