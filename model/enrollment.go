package model

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
	EnrollmentStatusPaused    EnrollmentStatus = "paused"
)

// Enrollment links a user to a course. One row per (user, course) pair;
// unenrolling flips the status to dropped instead of deleting, so progress
// survives re-enrollment.
type Enrollment struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID     uint             `gorm:"not null;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID   uint             `gorm:"not null;uniqueIndex:idx_user_course" json:"course_id"`
	Status     EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Progress   float64          `gorm:"default:0" json:"progress"` // percentage [0,100]
	EnrolledAt time.Time        `gorm:"not null" json:"enrolled_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// TableName specifies the table name for Enrollment
func (Enrollment) TableName() string {
	return "user_course_enrollments"
}

// IsActive reports whether the enrollment is currently active.
func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}

// ValidStatus reports whether s is one of the declared enrollment statuses.
func ValidStatus(s EnrollmentStatus) bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusCompleted,
		EnrollmentStatusDropped, EnrollmentStatusPaused:
		return true
	}
	return false
}
