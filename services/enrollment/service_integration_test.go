package enrollment

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/courseportal/api/model"
)

// setupTestDB connects to the database named by the standard DB_* variables.
// Tests are skipped unless RUN_INTEGRATION_TESTS=true.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host,
		os.Getenv("DB_USER_NAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{}, &model.Semester{}, &model.Course{}, &model.Enrollment{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// seedStudentAndCourse creates a fresh user, semester and course for a test.
func seedStudentAndCourse(t *testing.T, db *gorm.DB) (*model.User, *model.Course) {
	t.Helper()

	suffix := time.Now().UnixNano()

	user := model.User{
		Email:        fmt.Sprintf("student_%d@test.local", suffix),
		PasswordHash: "x",
		Name:         "Test Student",
		Role:         model.RoleStudent,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	semester := model.Semester{
		Title:   "Fall 2025",
		Section: "63_A",
	}
	if err := db.Create(&semester).Error; err != nil {
		t.Fatalf("failed to create semester: %v", err)
	}

	course := model.Course{
		SemesterID: semester.ID,
		Title:      "Introduction to Programming",
		CourseCode: fmt.Sprintf("CSE-%d", suffix%1000000),
		IsActive:   true,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", user.ID).Delete(&model.Enrollment{})
		db.Unscoped().Delete(&course)
		db.Unscoped().Delete(&semester)
		db.Unscoped().Delete(&user)
	})

	return &user, &course
}

func TestEnrollmentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, course := seedStudentAndCourse(t, db)

	// Fresh enroll creates an active row with zero progress
	first, err := svc.Enroll(user.ID, course.ID)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if first.Status != model.EnrollmentStatusActive {
		t.Errorf("status = %q, want active", first.Status)
	}
	if first.Progress != 0 {
		t.Errorf("progress = %v, want 0", first.Progress)
	}

	// Enrolling twice conflicts
	if _, err := svc.Enroll(user.ID, course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	if enrolled, err := svc.IsEnrolled(user.ID, course.ID); err != nil || !enrolled {
		t.Errorf("IsEnrolled = (%v, %v), want (true, nil)", enrolled, err)
	}

	// Simulate accumulated progress before dropping
	if err := db.Model(&model.Enrollment{}).Where("id = ?", first.ID).
		Update("progress", 40.0).Error; err != nil {
		t.Fatalf("failed to set progress: %v", err)
	}

	// Unenroll keeps the row with status dropped
	dropped, err := svc.Unenroll(user.ID, course.ID)
	if err != nil {
		t.Fatalf("Unenroll failed: %v", err)
	}
	if dropped.ID != first.ID {
		t.Errorf("unenroll touched row %d, want %d", dropped.ID, first.ID)
	}

	var row model.Enrollment
	if err := db.First(&row, first.ID).Error; err != nil {
		t.Fatalf("enrollment row deleted on unenroll: %v", err)
	}
	if row.Status != model.EnrollmentStatusDropped {
		t.Errorf("status after unenroll = %q, want dropped", row.Status)
	}

	// Dropped courses no longer show in the active list
	active, err := svc.ListActive(user.ID)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active list has %d rows after drop, want 0", len(active))
	}

	if enrolled, err := svc.IsEnrolled(user.ID, course.ID); err != nil || enrolled {
		t.Errorf("IsEnrolled after drop = (%v, %v), want (false, nil)", enrolled, err)
	}

	// Unenrolling again conflicts on the non-active row
	if _, err := svc.Unenroll(user.ID, course.ID); !errors.Is(err, ErrEnrollmentNotActive) {
		t.Fatalf("expected ErrEnrollmentNotActive, got %v", err)
	}

	// Re-enroll reactivates the same row, refreshing enrolled_at but
	// keeping the accumulated progress
	before := row.EnrolledAt
	reenrolled, err := svc.Enroll(user.ID, course.ID)
	if err != nil {
		t.Fatalf("re-enroll failed: %v", err)
	}
	if reenrolled.ID != first.ID {
		t.Errorf("re-enroll created row %d, want reuse of %d", reenrolled.ID, first.ID)
	}

	if err := db.First(&row, first.ID).Error; err != nil {
		t.Fatalf("failed to reload row: %v", err)
	}
	if row.Status != model.EnrollmentStatusActive {
		t.Errorf("status after re-enroll = %q, want active", row.Status)
	}
	if row.Progress != 40 {
		t.Errorf("progress after re-enroll = %v, want 40", row.Progress)
	}
	if !row.EnrolledAt.After(before) {
		t.Errorf("enrolled_at %v not refreshed past %v", row.EnrolledAt, before)
	}

	var count int64
	db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("found %d enrollment rows for the pair, want 1", count)
	}
}

func TestReenrollFromNonActiveStatuses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, course := seedStudentAndCourse(t, db)

	first, err := svc.Enroll(user.ID, course.ID)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	// Any non-active row flips back to active on enroll, reusing the row.
	for _, status := range []model.EnrollmentStatus{
		model.EnrollmentStatusCompleted,
		model.EnrollmentStatusPaused,
	} {
		if err := db.Model(&model.Enrollment{}).Where("id = ?", first.ID).
			Update("status", status).Error; err != nil {
			t.Fatalf("failed to set status %q: %v", status, err)
		}

		reenrolled, err := svc.Enroll(user.ID, course.ID)
		if err != nil {
			t.Fatalf("re-enroll from %q failed: %v", status, err)
		}
		if reenrolled.ID != first.ID {
			t.Errorf("re-enroll from %q created row %d, want reuse of %d", status, reenrolled.ID, first.ID)
		}

		var row model.Enrollment
		if err := db.First(&row, first.ID).Error; err != nil {
			t.Fatalf("failed to reload row: %v", err)
		}
		if row.Status != model.EnrollmentStatusActive {
			t.Errorf("status after re-enroll from %q = %q, want active", status, row.Status)
		}
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, _ := seedStudentAndCourse(t, db)

	if _, err := svc.Enroll(user.ID, 999999999); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestUnenrollWithoutEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, course := seedStudentAndCourse(t, db)

	if _, err := svc.Unenroll(user.ID, course.ID); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestListActiveEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, _ := seedStudentAndCourse(t, db)

	enrollments, err := svc.ListActive(user.ID)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if enrollments == nil {
		t.Fatal("ListActive returned nil slice")
	}
	if len(enrollments) != 0 {
		t.Errorf("expected empty list, got %d rows", len(enrollments))
	}
}
