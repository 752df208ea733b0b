package enrollment

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/courseportal/api/model"
)

var (
	// ErrAlreadyEnrolled is returned when the user already has an active
	// enrollment in the course.
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	// ErrCourseNotFound is returned when the course does not exist or is inactive.
	ErrCourseNotFound = errors.New("course not found")

	// ErrNotEnrolled is returned when no enrollment row exists for the pair.
	ErrNotEnrolled = errors.New("not enrolled in this course")

	// ErrEnrollmentNotActive is returned when unenrolling an enrollment that
	// is not currently active (already dropped, completed or paused).
	ErrEnrollmentNotActive = errors.New("enrollment is not active")
)

// Action describes what Enroll should do given the current enrollment row.
type Action int

const (
	// ActionCreate inserts a fresh active enrollment.
	ActionCreate Action = iota
	// ActionReactivate flips a non-active enrollment back to active,
	// refreshing enrolled_at but keeping accumulated progress.
	ActionReactivate
	// ActionConflict rejects the request because an active enrollment
	// already exists.
	ActionConflict
)

// DecideEnroll determines how to handle an enroll request given the existing
// enrollment row, or nil when none exists. A unique constraint on
// (user_id, course_id) guarantees at most one row per pair, so the decision
// only ever looks at a single row.
func DecideEnroll(existing *model.Enrollment) Action {
	if existing == nil {
		return ActionCreate
	}
	if existing.Status != model.EnrollmentStatusActive {
		return ActionReactivate
	}
	return ActionConflict
}

// DecideUnenroll validates an unenroll request against the existing row.
// Only active enrollments can be dropped; the row itself is never deleted.
func DecideUnenroll(existing *model.Enrollment) error {
	if existing == nil {
		return ErrNotEnrolled
	}
	if existing.Status != model.EnrollmentStatusActive {
		return ErrEnrollmentNotActive
	}
	return nil
}

// Service implements the enrollment lifecycle on top of the database.
type Service struct {
	db *gorm.DB
}

// NewService creates an enrollment service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Enroll enrolls a user in a course. Re-enrolling a non-active enrollment
// reactivates the existing row instead of inserting a new one.
func (s *Service) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	var course model.Course
	if err := s.db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing model.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	switch {
	case err == nil:
		switch DecideEnroll(&existing) {
		case ActionReactivate:
			updates := map[string]interface{}{
				"status":      model.EnrollmentStatusActive,
				"enrolled_at": time.Now(),
			}
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		default:
			return nil, ErrAlreadyEnrolled
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		enrollment := model.Enrollment{
			UserID:     userID,
			CourseID:   courseID,
			Status:     model.EnrollmentStatusActive,
			Progress:   0,
			EnrolledAt: time.Now(),
		}
		if err := s.db.Create(&enrollment).Error; err != nil {
			// Concurrent enroll for the same pair loses the race on the
			// unique (user_id, course_id) constraint.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrAlreadyEnrolled
			}
			return nil, err
		}
		return &enrollment, nil
	default:
		return nil, err
	}
}

// Unenroll drops an active enrollment. The row is kept with status "dropped"
// so progress survives a later re-enroll.
func (s *Service) Unenroll(userID, courseID uint) (*model.Enrollment, error) {
	var existing model.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	if err := DecideUnenroll(&existing); err != nil {
		return nil, err
	}

	if err := s.db.Model(&existing).Update("status", model.EnrollmentStatusDropped).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// ListActive returns the user's active enrollments with courses preloaded.
// A user with no enrollments gets an empty slice, not an error.
func (s *Service) ListActive(userID uint) ([]model.Enrollment, error) {
	enrollments := []model.Enrollment{}
	err := s.db.
		Preload("Course").
		Preload("Course.Semester").
		Where("user_id = ? AND status = ?", userID, model.EnrollmentStatusActive).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

// IsEnrolled reports whether the user has an active enrollment in the course.
func (s *Service) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.EnrollmentStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
