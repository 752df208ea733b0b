package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered account. Students and section admins share
// one table, discriminated by Role; student-only profile fields stay empty
// for admins.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, admin
	TokenVersion int            `gorm:"default:0" json:"-"`                             // Increment to invalidate all user tokens

	// Student profile
	StudentID  string `gorm:"type:varchar(50);index" json:"student_id,omitempty"` // external university identifier
	Batch      string `gorm:"type:varchar(10)" json:"batch,omitempty"`
	Section    string `gorm:"type:varchar(10)" json:"section,omitempty"`
	SemesterID *uint  `gorm:"index" json:"semester_id,omitempty"` // current section's semester, optional

	// Relationships
	Semester       *Semester           `gorm:"foreignKey:SemesterID;constraint:OnDelete:SET NULL" json:"semester,omitempty"`
	Enrollments    []Enrollment        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"enrollments,omitempty"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
