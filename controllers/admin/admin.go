package adminController

import (
	"time"

	"edhub/middleware"
	"edhub/models"
	adminValidator "edhub/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Controller handles the admin analytics and management surface.
// All routes are gated to the ADMIN role in the router.
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// Stats returns the dashboard aggregations. Missing data yields zeros, never
// an error.
func (ctrl *Controller) Stats(c *fiber.Ctx) error {
	db := ctrl.DB

	// Accounts by role
	type roleCount struct {
		Role  models.Role `json:"role"`
		Count int64       `json:"count"`
	}
	var roleCounts []roleCount
	db.Model(&models.User{}).
		Where("is_deleted = ?", false).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&roleCounts)

	usersByRole := fiber.Map{
		string(models.RoleStudent):    int64(0),
		string(models.RoleInstructor): int64(0),
		string(models.RoleAdmin):      int64(0),
	}
	for _, rc := range roleCounts {
		usersByRole[string(rc.Role)] = rc.Count
	}

	// Total revenue from completed payments
	var totalRevenue float64
	db.Model(&models.Payment{}).
		Where("status = ? AND is_deleted = ?", models.PaymentStatusCompleted, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	// Enrollments in the trailing 7 days
	var recentEnrollments int64
	weekAgo := time.Now().AddDate(0, 0, -7)
	db.Model(&models.Enrollment{}).
		Where("created_at >= ? AND is_deleted = ?", weekAgo, false).
		Count(&recentEnrollments)

	// Top 5 courses by enrollment count
	type topCourse struct {
		CourseID    uint   `json:"course_id"`
		Title       string `json:"title"`
		Enrollments int64  `json:"enrollments"`
	}
	var topCourses []topCourse
	db.Model(&models.Enrollment{}).
		Select("enrollments.course_id, courses.title, COUNT(*) as enrollments").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.is_deleted = ? AND courses.is_deleted = ?", false, false).
		Group("enrollments.course_id, courses.title").
		Order("enrollments desc").
		Limit(5).
		Scan(&topCourses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users_by_role":       usersByRole,
		"total_revenue":       totalRevenue,
		"enrollments_last_7d": recentEnrollments,
		"top_courses":         topCourses,
	})
}

// CourseAnalytics returns the monthly trend, category and rating breakdowns
func (ctrl *Controller) CourseAnalytics(c *fiber.Ctx) error {
	db := ctrl.DB

	// Monthly enrollment and revenue trend over a trailing 6-month window
	type monthBucket struct {
		Month       string  `json:"month"`
		Enrollments int64   `json:"enrollments"`
		Revenue     float64 `json:"revenue"`
	}

	months := 6
	trend := make([]monthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		anchor := time.Now().AddDate(0, -i, 0)
		start := now.New(anchor).BeginningOfMonth()
		end := now.New(anchor).EndOfMonth()

		var enrollments int64
		db.Model(&models.Enrollment{}).
			Where("created_at BETWEEN ? AND ? AND is_deleted = ?", start, end, false).
			Count(&enrollments)

		var revenue float64
		db.Model(&models.Payment{}).
			Where("created_at BETWEEN ? AND ? AND status = ? AND is_deleted = ?",
				start, end, models.PaymentStatusCompleted, false).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&revenue)

		trend = append(trend, monthBucket{
			Month:       start.Format("2006-01"),
			Enrollments: enrollments,
			Revenue:     revenue,
		})
	}

	// Course count by category
	type categoryCount struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	var categories []categoryCount
	db.Model(&models.Course{}).
		Where("is_deleted = ?", false).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&categories)

	// Review count by rating value
	type ratingCount struct {
		Rating int   `json:"rating"`
		Count  int64 `json:"count"`
	}
	var ratings []ratingCount
	db.Model(&models.Review{}).
		Where("is_deleted = ?", false).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Order("rating asc").
		Scan(&ratings)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course analytics fetched successfully!", fiber.Map{
		"monthly_trend":       trend,
		"courses_by_category": categories,
		"reviews_by_rating":   ratings,
	})
}

// ListUsers returns a paginated user listing
func (ctrl *Controller) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := ctrl.DB.Model(&models.User{}).Where("is_deleted = ?", false)

	if search != "" {
		db = db.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role := c.Query("role"); role != "" {
		if parsed, ok := models.ParseRole(role); ok {
			db = db.Where("role = ?", parsed)
		}
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateUser changes a user's role, block status or name
func (ctrl *Controller) UpdateUser(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*adminValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Role != "" {
		role, _ := models.ParseRole(reqData.Role)
		user.Role = role
	}
	if reqData.IsBlocked != nil {
		user.IsBlocked = *reqData.IsBlocked
	}
	if reqData.Name != "" {
		user.Name = reqData.Name
	}

	if err := ctrl.DB.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// ListCourses returns the full catalog including drafts
func (ctrl *Controller) ListCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := ctrl.DB.Model(&models.Course{})
	if !c.QueryBool("include_deleted", false) {
		db = db.Where("is_deleted = ?", false)
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ListPayments returns the paginated payment ledger
func (ctrl *Controller) ListPayments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := ctrl.DB.Model(&models.Payment{}).Where("is_deleted = ?", false)

	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var records []models.Payment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": records,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
