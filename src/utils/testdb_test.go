package utils

import (
	"fmt"
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/types"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDb gives every test its own in-memory database and installs it as
// the shared instance. cache=shared keeps the pool's connections on the same
// database for the lifetime of the test.
func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("error opening test database: %s", err.Error())
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Course{},
		&models.Tutor{},
		&models.VisaService{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
	); err != nil {
		t.Fatalf("error migration: %s", err.Error())
	}
	db.NewDB(conn)
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, role types.Role) models.User {
	t.Helper()
	user := models.User{
		Name:  "Test User",
		Email: fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		Role:  role,
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("error seeding user: %s", err.Error())
	}
	return user
}

func seedSchool(t *testing.T, conn *gorm.DB, owner models.User) models.School {
	t.Helper()
	school := models.School{
		Name:    fmt.Sprintf("Test School %d", time.Now().UnixNano()),
		Country: "ES",
		City:    "Barcelona",
		OwnerID: owner.ID,
	}
	if err := conn.Create(&school).Error; err != nil {
		t.Fatalf("error seeding school: %s", err.Error())
	}
	return school
}

func seedCourse(t *testing.T, conn *gorm.DB, school models.School, maxStudents int64) models.Course {
	t.Helper()
	course := models.Course{
		SchoolID:    school.ID,
		Title:       fmt.Sprintf("Spanish B1 %d", time.Now().UnixNano()),
		Language:    "spanish",
		Level:       "B1",
		Price:       350,
		MaxStudents: maxStudents,
		IsActive:    true,
	}
	if err := conn.Create(&course).Error; err != nil {
		t.Fatalf("error seeding course: %s", err.Error())
	}
	return course
}

func seedTutor(t *testing.T, conn *gorm.DB, user models.User, rate float64) models.Tutor {
	t.Helper()
	tutor := models.Tutor{
		UserID:      user.ID,
		Headline:    "Conversational Spanish",
		Languages:   "spanish,english",
		HourlyRate:  rate,
		IsAvailable: true,
	}
	if err := conn.Create(&tutor).Error; err != nil {
		t.Fatalf("error seeding tutor: %s", err.Error())
	}
	return tutor
}

func seedVisaService(t *testing.T, conn *gorm.DB, processingTime string) models.VisaService {
	t.Helper()
	service := models.VisaService{
		Name:           "Student Visa Assistance",
		Country:        "ES",
		Price:          120,
		ProcessingTime: processingTime,
		IsActive:       true,
	}
	if err := conn.Create(&service).Error; err != nil {
		t.Fatalf("error seeding visa service: %s", err.Error())
	}
	return service
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
