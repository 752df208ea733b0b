package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Semester represents an academic term for one section. Section encodes the
// cohort batch and class-section letter as "<batch>_<section>", e.g. "63_A".
type Semester struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Section     string         `gorm:"type:varchar(20);not null;index" json:"section"` // "<batch>_<section>"
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Description string         `gorm:"type:text" json:"description"`

	// Relationships
	Courses []Course `gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
}

// Batch extracts the cohort batch from the section string, e.g. "63" from
// "63_A". Returns the whole string when no separator is present.
func (s *Semester) Batch() string {
	return BatchFromSection(s.Section)
}

// SectionLetter extracts the class-section letter, e.g. "A" from "63_A".
func (s *Semester) SectionLetter() string {
	if _, letter, found := strings.Cut(s.Section, "_"); found {
		return letter
	}
	return ""
}

// BatchFromSection extracts the batch prefix from a "<batch>_<section>" string.
func BatchFromSection(section string) string {
	batch, _, _ := strings.Cut(section, "_")
	return batch
}

// MakeSection builds the "<batch>_<section>" encoding.
func MakeSection(batch, letter string) string {
	return batch + "_" + letter
}
