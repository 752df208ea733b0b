package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a course offered in a semester
type Course struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	SemesterID      uint           `gorm:"not null;index" json:"semester_id"`
	Title           string         `gorm:"not null" json:"title"`
	CourseCode      string         `gorm:"uniqueIndex;not null" json:"course_code"` // e.g., "CSE-115"
	TeacherName     string         `gorm:"type:varchar(255)" json:"teacher_name"`
	TeacherEmail    string         `gorm:"type:varchar(255)" json:"teacher_email"`
	Credits         float64        `gorm:"default:3" json:"credits"`
	IsHighlighted   bool           `gorm:"default:false" json:"is_highlighted"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	EnrollmentCount int64          `gorm:"default:0" json:"enrollment_count"` // aggregate, refreshed by cron

	// IsEnrolled is filled for authenticated callers on course detail
	// responses, never persisted.
	IsEnrolled *bool `gorm:"-" json:"is_enrolled,omitempty"`

	// Relationships
	Semester    Semester     `gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE" json:"semester,omitempty"`
	Topics      []Topic      `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
