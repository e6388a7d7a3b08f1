package paymentController

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"upskill/config"
	"upskill/database"
	"upskill/models"
)

const (
	testJWTKey        = "test-jwt-key"
	testPaymentSecret = "test-payment-secret"
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
		JWTKey:           testJWTKey,
		PaymentSecret:    testPaymentSecret,
		PaymentCurrency:  "INR",
		EmailSender:      "test@upskill.io",
		ReconcileMinutes: 5,
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Role:      role,
		Password:  "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, name string, price uint, instructorID uint) models.Course {
	t.Helper()

	course := models.Course{
		Name:         name,
		Description:  name + " description",
		Price:        price,
		Status:       "ACTIVE",
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

// recordingNotifier captures enrollment notifications instead of sending mail
type recordingNotifier struct {
	calls []string
	fail  bool
}

func (n *recordingNotifier) notify(email, firstName, courseName string) error {
	if n.fail {
		return errFailedSend
	}
	n.calls = append(n.calls, email+"|"+courseName)
	return nil
}

type sendError string

func (e sendError) Error() string { return string(e) }

const errFailedSend = sendError("smtp unreachable")
