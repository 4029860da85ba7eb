package courseController

import (
	"log"
	"time"

	"edhub/middleware"
	"edhub/models"
	"edhub/payments"
	courseValidator "edhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Enroll enrolls the current student in a course. The payment record, the
// enrollment row and the course's student counter are written in one
// transaction, and the unique (user_id, course_id) index turns a concurrent
// duplicate into a conflict instead of a second enrollment.
func (ctrl *Controller) Enroll(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*courseValidator.EnrollRequest)
	if !ok {
		reqData = &courseValidator.EnrollRequest{PaymentMethod: models.PaymentMethodCard}
	}

	result, err := ctrl.Gateway.Charge(payments.ChargeRequest{
		UserID:     user.ID,
		CourseID:   course.ID,
		Amount:     course.Price,
		Method:     reqData.PaymentMethod,
		CouponCode: reqData.CouponCode,
	})
	if err != nil {
		// Keep a trace of the failed attempt; the ledger is append-only
		failed := models.Payment{
			UserID:        user.ID,
			CourseID:      course.ID,
			Amount:        course.Price,
			Method:        reqData.PaymentMethod,
			Status:        models.PaymentStatusFailed,
			TransactionID: "failed-" + time.Now().Format("20060102150405.000000000"),
			CouponCode:    reqData.CouponCode,
		}
		if dbErr := ctrl.DB.Create(&failed).Error; dbErr != nil {
			log.Printf("Error recording failed payment: %v", dbErr)
		}
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment failed!", nil)
	}

	payment := models.Payment{
		UserID:        user.ID,
		CourseID:      course.ID,
		Amount:        course.Price,
		Method:        reqData.PaymentMethod,
		Status:        models.PaymentStatusCompleted,
		TransactionID: result.TransactionID,
		CouponCode:    reqData.CouponCode,
	}

	enrollment := models.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Progress: 0,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", course.ID).
			UpdateColumn("student_count", gorm.Expr("student_count + 1")).Error
	})
	if err != nil {
		// A unique-index violation here means a concurrent enroll won the race
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	course.StudentCount++

	ctrl.Mailer.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", fiber.Map{
		"payment": payment,
		"course":  course,
	})
}

// UpdateProgress sets the stored progress for the caller's enrollment.
// Completion is sticky: once progress has reached 100 the completed flag stays
// set even if progress later drops.
func (ctrl *Controller) UpdateProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)
	if !ok || reqData.Progress == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	now := time.Now()
	enrollment.Progress = *reqData.Progress
	enrollment.LastAccessed = &now
	if enrollment.Progress == 100 {
		enrollment.Completed = true
	}

	if err := ctrl.DB.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", enrollment)
}

// ListEnrollments returns the caller's enrollments with course summaries
func (ctrl *Controller) ListEnrollments(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page, _ := c.Locals("page").(int)
	limit, _ := c.Locals("limit").(int)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := ctrl.DB.Model(&models.Enrollment{}).Where("user_id = ? AND is_deleted = ?", user.ID, false)

	var total int64
	db.Count(&total)

	var enrollments []models.Enrollment
	if err := db.Preload("Course").Offset(offset).Limit(limit).Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
