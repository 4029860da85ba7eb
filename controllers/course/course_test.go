package courseController_test

import (
	"fmt"
	"testing"

	"edhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)

	_, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)

	resp, body := env.request(t, "POST", "/api/courses", instructorToken, fiber.Map{
		"title":       "Intro to Go, 2nd Edition!",
		"description": "Learn Go from scratch",
		"category":    "programming",
		"price":       49.99,
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "intro-to-go-2nd-edition", data["slug"])
	assert.Equal(t, false, data["is_published"])
}

func TestCreateCourseStudentForbidden(t *testing.T) {
	env := newTestEnv(t)

	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)

	resp, _ := env.request(t, "POST", "/api/courses", studentToken, fiber.Map{
		"title": "Sneaky Course",
		"price": 10,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreateCourseNegativePrice(t *testing.T) {
	env := newTestEnv(t)

	_, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)

	resp, _ := env.request(t, "POST", "/api/courses", instructorToken, fiber.Map{
		"title": "Free Money",
		"price": -5,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdminCreateRequiresRealInstructor(t *testing.T) {
	env := newTestEnv(t)

	student, _ := env.createUser(t, "a@x.com", models.RoleStudent)
	_, adminToken := env.createUser(t, "adm@x.com", models.RoleAdmin)

	// Pointing the course at a student account must fail
	resp, _ := env.request(t, "POST", "/api/courses", adminToken, fiber.Map{
		"title":         "Orphan Course",
		"price":         10,
		"instructor_id": student.ID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateCourseRegeneratesSlug(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	course := env.createCourse(t, instructor.ID, "Old Title", 20, true)

	// Non-title update keeps the slug
	resp, body := env.request(t, "PUT", fmt.Sprintf("/api/courses/%d", course.ID), instructorToken,
		fiber.Map{"description": "updated"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "old-title", body["data"].(map[string]interface{})["slug"])

	// Title change regenerates it
	resp, body = env.request(t, "PUT", fmt.Sprintf("/api/courses/%d", course.ID), instructorToken,
		fiber.Map{"title": "Brand New Title"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "brand-new-title", body["data"].(map[string]interface{})["slug"])
}

func TestUpdateCourseOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)

	owner, _ := env.createUser(t, "owner@x.com", models.RoleInstructor)
	_, otherToken := env.createUser(t, "other@x.com", models.RoleInstructor)
	course := env.createCourse(t, owner.ID, "Go Basics", 20, true)

	resp, _ := env.request(t, "PUT", fmt.Sprintf("/api/courses/%d", course.ID), otherToken,
		fiber.Map{"title": "Hijacked"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteCourseCascadesReviews(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	student, _ := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	review := models.Review{UserID: student.ID, CourseID: course.ID, Rating: 5, Comment: "great"}
	require.NoError(t, env.db.Create(&review).Error)

	resp, _ := env.request(t, "DELETE", fmt.Sprintf("/api/courses/%d", course.ID), instructorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var liveReviews int64
	env.db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&liveReviews)
	assert.Equal(t, int64(0), liveReviews)

	// Deleted course is gone from the catalog
	resp, _ = env.request(t, "GET", fmt.Sprintf("/api/courses/%d", course.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListCoursesOnlyPublished(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	env.createCourse(t, instructor.ID, "Published Course", 20, true)
	env.createCourse(t, instructor.ID, "Draft Course", 20, false)

	resp, body := env.request(t, "GET", "/api/courses", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := body["data"].(map[string]interface{})["courses"].([]interface{})
	assert.Len(t, courses, 1)
	assert.Equal(t, "Published Course", courses[0].(map[string]interface{})["title"])
}

func TestSubmitReview(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken, nil)

	path := fmt.Sprintf("/api/courses/%d/reviews", course.ID)

	resp, _ := env.request(t, "POST", path, studentToken, fiber.Map{"rating": 4, "comment": "solid"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Denormalized rating refreshed
	var stored models.Course
	require.NoError(t, env.db.First(&stored, course.ID).Error)
	assert.Equal(t, float64(4), stored.Rating)

	// One review per (user, course)
	resp, _ = env.request(t, "POST", path, studentToken, fiber.Map{"rating": 5, "comment": "again"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestReviewRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/reviews", course.ID), studentToken,
		fiber.Map{"rating": 4, "comment": "never took it"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCourseContentRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	path := fmt.Sprintf("/api/courses/%d/content", course.ID)

	// Not enrolled
	resp, _ := env.request(t, "GET", path, studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Owner always may
	resp, _ = env.request(t, "GET", path, instructorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Enrolled student may
	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken, nil)
	resp, _ = env.request(t, "GET", path, studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateAndDeleteModule(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	module := models.Module{CourseID: course.ID, Title: "Old Name", OrderIndex: 1}
	require.NoError(t, env.db.Create(&module).Error)
	lesson := models.Lesson{CourseID: course.ID, ModuleID: module.ID, Title: "Lesson"}
	require.NoError(t, env.db.Create(&lesson).Error)

	resp, body := env.request(t, "PUT", fmt.Sprintf("/api/modules/%d", module.ID), instructorToken,
		fiber.Map{"title": "New Name", "order_index": 3})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "New Name", data["title"])
	assert.Equal(t, float64(3), data["order_index"])

	// Deleting the module takes its lessons with it
	resp, _ = env.request(t, "DELETE", fmt.Sprintf("/api/modules/%d", module.ID), instructorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var liveLessons int64
	env.db.Model(&models.Lesson{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Count(&liveLessons)
	assert.Equal(t, int64(0), liveLessons)
}

func TestUpdateLessonContentType(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	module := models.Module{CourseID: course.ID, Title: "Section"}
	require.NoError(t, env.db.Create(&module).Error)
	lesson := models.Lesson{CourseID: course.ID, ModuleID: module.ID, Title: "Lesson", ContentType: "TEXT"}
	require.NoError(t, env.db.Create(&lesson).Error)

	path := fmt.Sprintf("/api/lessons/%d", lesson.ID)

	resp, _ := env.request(t, "PUT", path, instructorToken,
		fiber.Map{"content_type": "VIDEO", "video_url": "https://cdn.example.com/1.mp4", "duration": 12})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Lesson
	require.NoError(t, env.db.First(&stored, lesson.ID).Error)
	assert.Equal(t, "VIDEO", stored.ContentType)
	assert.Equal(t, 12, stored.Duration)

	resp, _ = env.request(t, "PUT", path, instructorToken, fiber.Map{"content_type": "AUDIO"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAddModuleAndLesson(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, body := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/modules", course.ID), instructorToken,
		fiber.Map{"title": "Getting Started", "order_index": 1})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	moduleID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	resp, _ = env.request(t, "POST", fmt.Sprintf("/api/modules/%d/lessons", moduleID), instructorToken,
		fiber.Map{"title": "Hello World", "content_type": "TEXT", "text_content": "package main"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var lessons int64
	env.db.Model(&models.Lesson{}).Where("course_id = ?", course.ID).Count(&lessons)
	assert.Equal(t, int64(1), lessons)
}
