package topic

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/services/storage"
	"github.com/courseportal/api/utils/pdfvalidation"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

// CreateSlideRequest represents the JSON body for registering a slide that
// is already hosted elsewhere (e.g. a Google Drive link).
type CreateSlideRequest struct {
	TopicID    uint   `json:"topic_id" validate:"required,min=1"`
	Title      string `json:"title" validate:"required,min=2,max=255"`
	FileURL    string `json:"file_url" validate:"required,url"`
	PageCount  int    `json:"page_count" validate:"omitempty,min=0"`
	OrderIndex *int   `json:"order_index" validate:"omitempty,min=0"`
}

// UpdateSlideRequest represents the request body for updating slide metadata
type UpdateSlideRequest struct {
	Title      string `json:"title" validate:"omitempty,min=2,max=255"`
	FileURL    string `json:"file_url" validate:"omitempty,url"`
	OrderIndex *int   `json:"order_index" validate:"omitempty,min=0"`
}

// CreateSlide handles POST /api/v1/slides (admin)
// Accepts either a JSON body with an external file_url, or a multipart form
// with a "file" PDF that gets validated and uploaded to object storage.
func (h *TopicHandler) CreateSlide(c *fiber.Ctx) error {
	if file, err := c.FormFile("file"); err == nil {
		return h.createSlideFromUpload(c, file)
	}

	var req CreateSlideRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	topic, err := h.findTopic(c, req.TopicID)
	if topic == nil {
		return err
	}

	slide := model.Slide{
		TopicID:   req.TopicID,
		Title:     validation.SanitizeString(req.Title),
		FileURL:   req.FileURL,
		PageCount: req.PageCount,
	}
	slide.OrderIndex = h.nextSlideIndex(req.TopicID, req.OrderIndex)

	if err := h.db.Create(&slide).Error; err != nil {
		return response.InternalServerError(c, "Failed to create slide")
	}

	return response.Created(c, slide)
}

func (h *TopicHandler) createSlideFromUpload(c *fiber.Ctx, file *multipart.FileHeader) error {
	if h.spaces == nil {
		return response.ServiceUnavailable(c, "File uploads are not configured")
	}

	topicID, err := parseFormUint(c, "topic_id")
	if err != nil {
		return response.BadRequest(c, "topic_id is required")
	}
	title := validation.SanitizeString(c.FormValue("title"))
	if title == "" {
		return response.BadRequest(c, "title is required")
	}

	topic, errResp := h.findTopic(c, topicID)
	if topic == nil {
		return errResp
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return response.BadRequest(c, "Only PDF files are supported")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	result, err := pdfvalidation.ValidatePDFBytes(content, pdfvalidation.SlideLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to validate PDF")
	}
	if !result.Valid {
		return response.BadRequest(c, result.Error)
	}

	key := storage.GenerateKey(fmt.Sprintf("slides/topic_%d", topicID), file.Filename)
	fileURL, err := h.spaces.UploadBytes(c.Context(), key, content, "application/pdf")
	if err != nil {
		return response.InternalServerError(c, "Failed to upload slide")
	}

	slide := model.Slide{
		TopicID:    topicID,
		Title:      title,
		FileURL:    fileURL,
		StorageKey: key,
		PageCount:  result.PageCount,
	}
	slide.OrderIndex = h.nextSlideIndex(topicID, nil)

	if err := h.db.Create(&slide).Error; err != nil {
		// Roll back the orphaned object
		_ = h.spaces.DeleteFile(c.Context(), key)
		return response.InternalServerError(c, "Failed to create slide")
	}

	return response.Created(c, slide)
}

// UpdateSlide handles PUT /api/v1/slides/:id (admin)
func (h *TopicHandler) UpdateSlide(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateSlideRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var slide model.Slide
	if err := h.db.First(&slide, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Slide not found")
		}
		return response.InternalServerError(c, "Failed to fetch slide")
	}

	if req.Title != "" {
		slide.Title = validation.SanitizeString(req.Title)
	}
	if req.FileURL != "" {
		slide.FileURL = req.FileURL
	}
	if req.OrderIndex != nil {
		slide.OrderIndex = *req.OrderIndex
	}

	if err := h.db.Save(&slide).Error; err != nil {
		return response.InternalServerError(c, "Failed to update slide")
	}

	return response.SuccessWithMessage(c, "Slide updated successfully", slide)
}

// DeleteSlide handles DELETE /api/v1/slides/:id (admin)
func (h *TopicHandler) DeleteSlide(c *fiber.Ctx) error {
	id := c.Params("id")

	var slide model.Slide
	if err := h.db.First(&slide, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Slide not found")
		}
		return response.InternalServerError(c, "Failed to fetch slide")
	}

	if err := h.db.Delete(&slide).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete slide")
	}

	if h.spaces != nil && slide.StorageKey != "" {
		_ = h.spaces.DeleteFile(c.Context(), slide.StorageKey)
	}

	return response.SuccessWithMessage(c, "Slide deleted successfully", nil)
}

// findTopic loads a topic or writes the error response, returning nil topic
// when the caller should bail with the returned error.
func (h *TopicHandler) findTopic(c *fiber.Ctx, topicID uint) (*model.Topic, error) {
	var topic model.Topic
	if err := h.db.First(&topic, topicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NotFound(c, "Topic not found")
		}
		return nil, response.InternalServerError(c, "Failed to verify topic")
	}
	return &topic, nil
}

func parseFormUint(c *fiber.Ctx, field string) (uint, error) {
	raw := c.FormValue(field)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

// nextSlideIndex picks the explicit order index or appends to the end.
func (h *TopicHandler) nextSlideIndex(topicID uint, explicit *int) int {
	if explicit != nil {
		return *explicit
	}
	var maxIndex int
	h.db.Model(&model.Slide{}).
		Where("topic_id = ?", topicID).
		Select("COALESCE(MAX(order_index), -1)").
		Scan(&maxIndex)
	return maxIndex + 1
}
