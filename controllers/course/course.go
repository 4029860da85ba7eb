package courseController

import (
	"edhub/config"
	"edhub/middleware"
	"edhub/models"
	"edhub/payments"
	"edhub/utils"
	courseValidator "edhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles the course catalog, enrollments and reviews
type Controller struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Gateway *payments.Gateway
	Mailer  *utils.Mailer
}

func New(db *gorm.DB, cfg *config.Config, gateway *payments.Gateway, mailer *utils.Mailer) *Controller {
	return &Controller{DB: db, Cfg: cfg, Gateway: gateway, Mailer: mailer}
}

// canManage reports whether the user may modify the course
func canManage(user *models.User, course *models.Course) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return user.Role == models.RoleInstructor && course.InstructorID == user.ID
}

// ListCourses returns published courses with optional category/search filters
func (ctrl *Controller) ListCourses(c *fiber.Ctx) error {
	q, ok := c.Locals("validatedList").(*courseValidator.ListQuery)
	if !ok {
		q = &courseValidator.ListQuery{Page: 1, Limit: 10}
	}
	offset := (q.Page - 1) * q.Limit

	db := ctrl.DB.Model(&models.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)

	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		db = db.Where("title LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(q.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  q.Page,
			"limit": q.Limit,
		},
	})
}

// GetCourse returns one published course with its content outline
func (ctrl *Controller) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Preload("Modules", "is_deleted = ?", false).
		Preload("Modules.Lessons", "is_deleted = ?", false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse creates a new unpublished course owned by an instructor
func (ctrl *Controller) CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	instructorID := user.ID
	if reqData.InstructorID != 0 && user.Role == models.RoleAdmin {
		instructorID = reqData.InstructorID
	}

	// The owning account must exist and actually be an instructor
	var instructor models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", instructorID, false).First(&instructor).Error; err != nil ||
		instructor.Role != models.RoleInstructor {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid instructor!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Slug:         utils.UniqueSlug(ctrl.DB, "courses", reqData.Title, 0),
		Description:  reqData.Description,
		Category:     reqData.Category,
		InstructorID: instructorID,
		Price:        reqData.Price,
		ThumbnailURL: reqData.ThumbnailURL,
		IsPublished:  false,
	}

	if err := ctrl.DB.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies a partial update; the slug is regenerated only when the
// title changes.
func (ctrl *Controller) UpdateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManage(user, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" && reqData.Title != course.Title {
		course.Title = reqData.Title
		course.Slug = utils.UniqueSlug(ctrl.DB, "courses", reqData.Title, course.ID)
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := ctrl.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course and cascades to its reviews
func (ctrl *Controller) DeleteCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManage(user, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this course!", nil)
	}

	tx := ctrl.DB.Begin()

	course.IsDeleted = true
	course.IsPublished = false
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := tx.Model(&models.Review{}).Where("course_id = ?", course.ID).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course reviews!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// PublishCourse flips the publication flag
func (ctrl *Controller) PublishCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManage(user, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to publish this course!", nil)
	}

	course.IsPublished = !course.IsPublished
	if err := ctrl.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course publication updated!", course)
}
