package courseController_test

import (
	"fmt"
	"testing"

	"edhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, body := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken,
		fiber.Map{"paymentMethod": "card"})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	payment := data["payment"].(map[string]interface{})
	assert.Equal(t, "completed", payment["status"])
	assert.Equal(t, float64(20), payment["amount"])
	assert.NotEmpty(t, payment["transaction_id"])

	// All three writes must have landed
	var enrollment models.Enrollment
	require.NoError(t, env.db.Where("course_id = ?", course.ID).First(&enrollment).Error)
	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.Completed)

	var stored models.Course
	require.NoError(t, env.db.First(&stored, course.ID).Error)
	assert.Equal(t, int64(1), stored.StudentCount)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	path := fmt.Sprintf("/api/courses/%d/enroll", course.ID)

	resp, _ := env.request(t, "POST", path, studentToken, fiber.Map{"paymentMethod": "card"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := env.request(t, "POST", path, studentToken, fiber.Map{"paymentMethod": "card"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["status"])

	// The second attempt must not have written anything
	var enrollments int64
	env.db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)

	var stored models.Course
	require.NoError(t, env.db.First(&stored, course.ID).Error)
	assert.Equal(t, int64(1), stored.StudentCount)
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Draft Course", 20, false)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken,
		fiber.Map{"paymentMethod": "card"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEnrollRequiresStudentRole(t *testing.T) {
	env := newTestEnv(t)

	instructor, instructorToken := env.createUser(t, "teach@x.com", models.RoleInstructor)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), instructorToken,
		fiber.Map{"paymentMethod": "card"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestEnrollRejectsBadPaymentMethod(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken,
		fiber.Map{"paymentMethod": "bitcoin"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateProgress(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	student, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken,
		fiber.Map{"paymentMethod": "card"})

	path := fmt.Sprintf("/api/courses/%d/progress", course.ID)

	resp, body := env.request(t, "PUT", path, studentToken, fiber.Map{"progress": 40})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(40), data["progress"])
	assert.Equal(t, false, data["completed"])
	assert.NotNil(t, data["last_accessed"])

	resp, body = env.request(t, "PUT", path, studentToken, fiber.Map{"progress": 100})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["progress"])
	assert.Equal(t, true, data["completed"])

	var enrollment models.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.Progress)
	assert.True(t, enrollment.Completed)
}

func TestCompletionIsSticky(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken,
		fiber.Map{"paymentMethod": "card"})

	path := fmt.Sprintf("/api/courses/%d/progress", course.ID)

	env.request(t, "PUT", path, studentToken, fiber.Map{"progress": 100})

	// Dropping progress back down must not clear the completed flag
	resp, body := env.request(t, "PUT", path, studentToken, fiber.Map{"progress": 30})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(30), data["progress"])
	assert.Equal(t, true, data["completed"])
}

func TestUpdateProgressOutOfRange(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	student, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken,
		fiber.Map{"paymentMethod": "card"})

	path := fmt.Sprintf("/api/courses/%d/progress", course.ID)

	env.request(t, "PUT", path, studentToken, fiber.Map{"progress": 55})

	for _, bad := range []int{-1, 101, 500} {
		resp, _ := env.request(t, "PUT", path, studentToken, fiber.Map{"progress": bad})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	}

	// Stored state untouched by rejected updates
	var enrollment models.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, 55, enrollment.Progress)
}

func TestUpdateProgressNotEnrolled(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, _ := env.request(t, "PUT", fmt.Sprintf("/api/courses/%d/progress", course.ID), studentToken,
		fiber.Map{"progress": 50})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListEnrollments(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	first := env.createCourse(t, instructor.ID, "Go Basics", 20, true)
	second := env.createCourse(t, instructor.ID, "Advanced Go", 40, true)

	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", first.ID), studentToken,
		fiber.Map{"paymentMethod": "card"})
	env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", second.ID), studentToken,
		fiber.Map{"paymentMethod": "paypal"})

	resp, body := env.request(t, "GET", "/api/enrollments", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	enrollments := data["enrollments"].([]interface{})
	assert.Len(t, enrollments, 2)

	// Course summaries must be resolved
	entry := enrollments[0].(map[string]interface{})
	course := entry["course"].(map[string]interface{})
	assert.NotEmpty(t, course["title"])
}

// The scenario from the product walkthrough: register, enroll, finish the course.
func TestEnrollmentLifecycle(t *testing.T) {
	env := newTestEnv(t)

	instructor, _ := env.createUser(t, "teach@x.com", models.RoleInstructor)
	_, studentToken := env.createUser(t, "a@x.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Go Basics", 20, true)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body := env.request(t, "GET", "/api/enrollments", studentToken, nil)
	entry := body["data"].(map[string]interface{})["enrollments"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(0), entry["progress"])
	assert.Equal(t, false, entry["completed"])

	env.request(t, "PUT", fmt.Sprintf("/api/courses/%d/progress", course.ID), studentToken,
		fiber.Map{"progress": 100})

	_, body = env.request(t, "GET", "/api/enrollments", studentToken, nil)
	entry = body["data"].(map[string]interface{})["enrollments"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(100), entry["progress"])
	assert.Equal(t, true, entry["completed"])
}
