package courseRoutes

import (
	courseController "edhub/controllers/course"
	"edhub/middleware"
	"edhub/models"
	courseValidator "edhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Setup wires the public catalog, enrollment and review routes
func Setup(app *fiber.App, ctrl *courseController.Controller, auth *middleware.Auth) {
	courses := app.Group("/api/courses")

	// Catalog
	courses.Get("/", courseValidator.CourseList(), ctrl.ListCourses)
	courses.Post("/", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.CreateCourse(), ctrl.CreateCourse)
	courses.Get("/:id", courseValidator.CourseID(), ctrl.GetCourse)
	courses.Put("/:id", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.CourseID(), courseValidator.UpdateCourse(), ctrl.UpdateCourse)
	courses.Delete("/:id", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.CourseID(), ctrl.DeleteCourse)
	courses.Post("/:id/publish", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.CourseID(), ctrl.PublishCourse)

	// Content structure
	courses.Post("/:id/modules", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.CourseID(), courseValidator.CreateModule(), ctrl.AddModule)
	courses.Get("/:id/content", auth.Required, courseValidator.CourseID(), ctrl.GetContent)

	modules := app.Group("/api/modules")
	modules.Post("/:id/lessons", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.ModuleID(), courseValidator.CreateLesson(), ctrl.AddLesson)
	modules.Put("/:id", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.ModuleID(), courseValidator.UpdateModule(), ctrl.UpdateModule)
	modules.Delete("/:id", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.ModuleID(), ctrl.DeleteModule)

	lessons := app.Group("/api/lessons")
	lessons.Put("/:id", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.LessonID(), courseValidator.UpdateLesson(), ctrl.UpdateLesson)
	lessons.Delete("/:id", auth.Required, auth.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		courseValidator.LessonID(), ctrl.DeleteLesson)

	// Enrollment and progress
	courses.Post("/:id/enroll", auth.Required, auth.RequireRoles(models.RoleStudent),
		courseValidator.CourseID(), courseValidator.Enroll(), ctrl.Enroll)
	courses.Put("/:id/progress", auth.Required,
		courseValidator.CourseID(), courseValidator.UpdateProgress(), ctrl.UpdateProgress)
	app.Get("/api/enrollments", auth.Required, courseValidator.Pagination(), ctrl.ListEnrollments)

	// Reviews
	courses.Post("/:id/reviews", auth.Required,
		courseValidator.CourseID(), courseValidator.Review(), ctrl.SubmitReview)
	courses.Get("/:id/reviews", courseValidator.CourseID(), courseValidator.Pagination(), ctrl.ListReviews)
}
