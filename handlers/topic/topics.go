package topic

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/services/storage"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

// TopicHandler handles course topic and content requests
type TopicHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	spaces    *storage.SpacesClient // nil when object storage is not configured
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(db *gorm.DB, spaces *storage.SpacesClient) *TopicHandler {
	return &TopicHandler{
		db:        db,
		validator: validation.NewValidator(),
		spaces:    spaces,
	}
}

// CreateTopicRequest represents the request body for creating a topic
type CreateTopicRequest struct {
	CourseID    uint   `json:"course_id" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	OrderIndex  *int   `json:"order_index" validate:"omitempty,min=0"`
}

// UpdateTopicRequest represents the request body for updating a topic
type UpdateTopicRequest struct {
	Title       string `json:"title" validate:"omitempty,min=2,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	OrderIndex  *int   `json:"order_index" validate:"omitempty,min=0"`
}

// ReorderRequest represents the request body for reordering items.
// IDs are listed in the desired display order.
type ReorderRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// ListTopics handles GET /api/v1/courses/:course_id/topics
func (h *TopicHandler) ListTopics(c *fiber.Ctx) error {
	courseID := c.Params("course_id")

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	topics := []model.Topic{}
	err := h.db.
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Where("course_id = ?", course.ID).
		Order("order_index ASC, id ASC").
		Find(&topics).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch topics")
	}

	return response.Success(c, topics)
}

// CreateTopic handles POST /api/v1/topics (admin)
func (h *TopicHandler) CreateTopic(c *fiber.Ctx) error {
	var req CreateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, req.CourseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to verify course")
	}

	topic := model.Topic{
		CourseID:    req.CourseID,
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
	}
	if req.OrderIndex != nil {
		topic.OrderIndex = *req.OrderIndex
	} else {
		// Append to the end of the course
		var maxIndex int
		h.db.Model(&model.Topic{}).
			Where("course_id = ?", req.CourseID).
			Select("COALESCE(MAX(order_index), -1)").
			Scan(&maxIndex)
		topic.OrderIndex = maxIndex + 1
	}

	if err := h.db.Create(&topic).Error; err != nil {
		return response.InternalServerError(c, "Failed to create topic")
	}

	return response.Created(c, topic)
}

// UpdateTopic handles PUT /api/v1/topics/:id (admin)
func (h *TopicHandler) UpdateTopic(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var topic model.Topic
	if err := h.db.First(&topic, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Topic not found")
		}
		return response.InternalServerError(c, "Failed to fetch topic")
	}

	if req.Title != "" {
		topic.Title = validation.SanitizeString(req.Title)
	}
	if req.Description != "" {
		topic.Description = validation.SanitizeString(req.Description)
	}
	if req.OrderIndex != nil {
		topic.OrderIndex = *req.OrderIndex
	}

	if err := h.db.Save(&topic).Error; err != nil {
		return response.InternalServerError(c, "Failed to update topic")
	}

	return response.SuccessWithMessage(c, "Topic updated successfully", topic)
}

// DeleteTopic handles DELETE /api/v1/topics/:id (admin)
// Slides and videos under the topic are removed with it.
func (h *TopicHandler) DeleteTopic(c *fiber.Ctx) error {
	id := c.Params("id")

	var topic model.Topic
	if err := h.db.Preload("Slides").First(&topic, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Topic not found")
		}
		return response.InternalServerError(c, "Failed to fetch topic")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", topic.ID).Delete(&model.Slide{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", topic.ID).Delete(&model.Video{}).Error; err != nil {
			return err
		}
		return tx.Delete(&topic).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete topic")
	}

	// Remove self-hosted slide files after the DB delete commits
	if h.spaces != nil {
		for _, slide := range topic.Slides {
			if slide.StorageKey != "" {
				_ = h.spaces.DeleteFile(c.Context(), slide.StorageKey)
			}
		}
	}

	return response.SuccessWithMessage(c, "Topic and its content deleted successfully", nil)
}

// ReorderTopics handles PUT /api/v1/courses/:course_id/topics/reorder (admin)
func (h *TopicHandler) ReorderTopics(c *fiber.Ctx) error {
	courseID := c.Params("course_id")

	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return response.BadRequest(c, "ids is required")
	}

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i, topicID := range req.IDs {
			result := tx.Model(&model.Topic{}).
				Where("id = ? AND course_id = ?", topicID, course.ID).
				Update("order_index", i)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.BadRequest(c, "One or more topics do not belong to this course")
		}
		return response.InternalServerError(c, "Failed to reorder topics")
	}

	return response.SuccessWithMessage(c, "Topics reordered successfully", nil)
}
