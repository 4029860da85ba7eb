package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"edhub/config"
	courseController "edhub/controllers/course"
	"edhub/database"
	"edhub/middleware"
	"edhub/models"
	"edhub/payments"
	courseRoutes "edhub/routers/courseRoutes"
	"edhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var courseTestCounter int

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	tokens *middleware.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	courseTestCounter++
	dsn := fmt.Sprintf("file:coursetest%d?mode=memory&cache=shared", courseTestCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTKey: "test-secret", JWTExpiryHours: 1, SaltRound: bcrypt.MinCost}
	tokens := middleware.NewTokenService(cfg)
	auth := middleware.NewAuth(db, tokens)

	app := fiber.New()
	courseRoutes.Setup(app, courseController.New(db, cfg, payments.NewGateway(cfg), utils.NewMailer(cfg)), auth)

	return &testEnv{app: app, db: db, tokens: tokens}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Password: string(hash), Role: role}
	require.NoError(t, e.db.Create(&user).Error)

	token, err := e.tokens.Generate(&user)
	require.NoError(t, err)

	return user, token
}

func (e *testEnv) createCourse(t *testing.T, instructorID uint, title string, price float64, published bool) models.Course {
	t.Helper()

	course := models.Course{
		Title:        title,
		Slug:         utils.UniqueSlug(e.db, "courses", title, 0),
		InstructorID: instructorID,
		Price:        price,
		IsPublished:  published,
	}
	require.NoError(t, e.db.Create(&course).Error)
	return course
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}
