package model

import (
	"time"

	"gorm.io/gorm"
)

// Topic groups the study material of a course. Slides and videos hang off a
// topic and keep an explicit order index.
type Topic struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID    uint           `gorm:"not null;index" json:"course_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	OrderIndex  int            `gorm:"default:0" json:"order_index"`

	// Relationships
	Course Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Slides []Slide `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"slides,omitempty"`
	Videos []Video `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
}

// Slide is a single slide deck (PDF) attached to a topic.
type Slide struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	TopicID    uint           `gorm:"not null;index" json:"topic_id"`
	Title      string         `gorm:"not null" json:"title"`
	FileURL    string         `gorm:"type:varchar(512);not null" json:"file_url"`
	StorageKey string         `gorm:"type:varchar(512)" json:"-"` // set only for files we uploaded ourselves
	PageCount  int            `gorm:"default:0" json:"page_count"`
	OrderIndex int            `gorm:"default:0" json:"order_index"`

	Topic Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

// Video is a lecture video link attached to a topic.
type Video struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	TopicID     uint           `gorm:"not null;index" json:"topic_id"`
	Title       string         `gorm:"not null" json:"title"`
	VideoURL    string         `gorm:"type:varchar(512);not null" json:"video_url"`
	DurationSec int            `gorm:"default:0" json:"duration_sec"`
	OrderIndex  int            `gorm:"default:0" json:"order_index"`

	Topic Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}
