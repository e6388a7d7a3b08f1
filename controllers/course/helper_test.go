package courseController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"upskill/config"
	"upskill/database"
	"upskill/middleware"
	"upskill/models"
	courseValidator "upskill/validators/course"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Section{},
		&models.SubSection{},
		&models.Enrollment{},
		&models.CourseProgress{},
		&models.CompletedLecture{},
		&models.SettlementAttempt{},
	))

	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{
		JWTKey:          "test-jwt-key",
		PaymentSecret:   "test-payment-secret",
		PaymentCurrency: "INR",
	}

	return db
}

func newCourseApp() *fiber.App {
	app := fiber.New()
	app.Post("/course/create", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidator.CreateCourse(), CreateCourse)
	app.Patch("/course/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidator.CourseID(), PublishCourse)
	app.Delete("/course/:id", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidator.CourseID(), DeleteCourse)
	app.Get("/course/:id", middleware.JWTMiddleware, courseValidator.CourseID(), GetCourseDetails)
	app.Post("/course/:courseId/lecture/:subSectionId/complete", middleware.JWTMiddleware, middleware.RequireRole("USER"), courseValidator.MarkLectureComplete(), MarkLectureAsComplete)
	app.Get("/course/:courseId/progress", middleware.JWTMiddleware, courseValidator.CourseProgress(), GetProgressPercentage)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		FirstName: "Test",
		Email:     email,
		Role:      role,
		Password:  "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, name string, instructorID uint) models.Course {
	t.Helper()

	course := models.Course{
		Name:         name,
		Description:  name + " description",
		Price:        100,
		Status:       "ACTIVE",
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}
