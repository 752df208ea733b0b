package topic

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

// CreateVideoRequest represents the request body for adding a video.
// Videos are always externally hosted (e.g. YouTube), so only the URL
// and metadata are stored.
type CreateVideoRequest struct {
	TopicID     uint   `json:"topic_id" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,min=2,max=255"`
	VideoURL    string `json:"video_url" validate:"required,url"`
	DurationSec int    `json:"duration_sec" validate:"omitempty,min=0"`
	OrderIndex  *int   `json:"order_index" validate:"omitempty,min=0"`
}

// UpdateVideoRequest represents the request body for updating a video
type UpdateVideoRequest struct {
	Title       string `json:"title" validate:"omitempty,min=2,max=255"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	DurationSec *int   `json:"duration_sec" validate:"omitempty,min=0"`
	OrderIndex  *int   `json:"order_index" validate:"omitempty,min=0"`
}

// CreateVideo handles POST /api/v1/videos (admin)
func (h *TopicHandler) CreateVideo(c *fiber.Ctx) error {
	var req CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	topic, errResp := h.findTopic(c, req.TopicID)
	if topic == nil {
		return errResp
	}

	video := model.Video{
		TopicID:     req.TopicID,
		Title:       validation.SanitizeString(req.Title),
		VideoURL:    req.VideoURL,
		DurationSec: req.DurationSec,
	}
	if req.OrderIndex != nil {
		video.OrderIndex = *req.OrderIndex
	} else {
		var maxIndex int
		h.db.Model(&model.Video{}).
			Where("topic_id = ?", req.TopicID).
			Select("COALESCE(MAX(order_index), -1)").
			Scan(&maxIndex)
		video.OrderIndex = maxIndex + 1
	}

	if err := h.db.Create(&video).Error; err != nil {
		return response.InternalServerError(c, "Failed to create video")
	}

	return response.Created(c, video)
}

// UpdateVideo handles PUT /api/v1/videos/:id (admin)
func (h *TopicHandler) UpdateVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var video model.Video
	if err := h.db.First(&video, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Video not found")
		}
		return response.InternalServerError(c, "Failed to fetch video")
	}

	if req.Title != "" {
		video.Title = validation.SanitizeString(req.Title)
	}
	if req.VideoURL != "" {
		video.VideoURL = req.VideoURL
	}
	if req.DurationSec != nil {
		video.DurationSec = *req.DurationSec
	}
	if req.OrderIndex != nil {
		video.OrderIndex = *req.OrderIndex
	}

	if err := h.db.Save(&video).Error; err != nil {
		return response.InternalServerError(c, "Failed to update video")
	}

	return response.SuccessWithMessage(c, "Video updated successfully", video)
}

// DeleteVideo handles DELETE /api/v1/videos/:id (admin)
func (h *TopicHandler) DeleteVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	var video model.Video
	if err := h.db.First(&video, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Video not found")
		}
		return response.InternalServerError(c, "Failed to fetch video")
	}

	if err := h.db.Delete(&video).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete video")
	}

	return response.SuccessWithMessage(c, "Video deleted successfully", nil)
}
