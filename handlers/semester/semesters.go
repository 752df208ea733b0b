package semester

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/utils/cache"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

const (
	publicSemestersCacheKey = "semesters:public"
	publicSemestersCacheTTL = 5 * time.Minute
)

// SemesterHandler handles semester-related requests
type SemesterHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	cache     *cache.RedisCache
}

// NewSemesterHandler creates a new semester handler. The cache is optional;
// without it every public listing hits the database.
func NewSemesterHandler(db *gorm.DB, redisCache *cache.RedisCache) *SemesterHandler {
	return &SemesterHandler{
		db:        db,
		validator: validation.NewValidator(),
		cache:     redisCache,
	}
}

// CreateSemesterRequest represents the request body for creating a semester
type CreateSemesterRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Section     string `json:"section" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateSemesterRequest represents the request body for updating a semester
type UpdateSemesterRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=100"`
	Section     string `json:"section" validate:"omitempty"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}

// ListPublic handles GET /api/v1/semesters/public
// Returns active semesters with their active courses, no auth required.
func (h *SemesterHandler) ListPublic(c *fiber.Ctx) error {
	if h.cache != nil {
		cached := []model.Semester{}
		if err := h.cache.GetJSON(c.Context(), publicSemestersCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	semesters := []model.Semester{}
	err := h.db.
		Preload("Courses", "is_active = ?", true).
		Where("is_active = ?", true).
		Order("section ASC").
		Find(&semesters).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch semesters")
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), publicSemestersCacheKey, semesters, publicSemestersCacheTTL)
	}

	return response.Success(c, semesters)
}

// invalidatePublicCache drops the cached public listing after admin writes.
func (h *SemesterHandler) invalidatePublicCache(c *fiber.Ctx) {
	if h.cache != nil {
		_ = h.cache.Delete(c.Context(), publicSemestersCacheKey)
	}
}

// ListByBatch handles GET /api/v1/semesters/by-batch/:batch
// Returns active semesters whose section belongs to the given batch.
func (h *SemesterHandler) ListByBatch(c *fiber.Ctx) error {
	batch := c.Params("batch")
	if !validation.ValidateBatch(batch) {
		return response.BadRequest(c, "Invalid batch. Expected digits like 63")
	}

	semesters := []model.Semester{}
	err := h.db.
		Preload("Courses", "is_active = ?", true).
		Where("is_active = ? AND section LIKE ?", true, batch+"\\_%").
		Order("section ASC").
		Find(&semesters).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch semesters")
	}

	return response.Success(c, semesters)
}

// ListSemesters handles GET /api/v1/semesters (admin)
func (h *SemesterHandler) ListSemesters(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Semester{})

	if section := c.Query("section"); section != "" {
		query = query.Where("section = ?", section)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count semesters")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	semesters := []model.Semester{}
	if err := query.Order("section ASC, title ASC").
		Limit(limit).
		Offset(offset).
		Find(&semesters).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch semesters")
	}

	return response.Paginated(c, semesters, pagination)
}

// GetSemester handles GET /api/v1/semesters/:id
func (h *SemesterHandler) GetSemester(c *fiber.Ctx) error {
	id := c.Params("id")

	var semester model.Semester
	if err := h.db.Preload("Courses").First(&semester, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Semester not found")
		}
		return response.InternalServerError(c, "Failed to fetch semester")
	}

	return response.Success(c, semester)
}

// CreateSemester handles POST /api/v1/semesters (admin)
func (h *SemesterHandler) CreateSemester(c *fiber.Ctx) error {
	var req CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if !validation.ValidateSection(req.Section) {
		return response.BadRequest(c, "Invalid section. Expected format like 63_A")
	}

	req.Title = validation.SanitizeString(req.Title)

	// Same section may not carry two semesters with the same title
	var existing model.Semester
	if err := h.db.Where("section = ? AND title = ?", req.Section, req.Title).
		First(&existing).Error; err == nil {
		return response.Conflict(c, "Semester with this title already exists for this section")
	}

	semester := model.Semester{
		Title:       req.Title,
		Section:     req.Section,
		Description: validation.SanitizeString(req.Description),
		IsActive:    true,
	}
	if req.IsActive != nil {
		semester.IsActive = *req.IsActive
	}

	if err := h.db.Create(&semester).Error; err != nil {
		return response.InternalServerError(c, "Failed to create semester")
	}

	h.invalidatePublicCache(c)

	return response.Created(c, semester)
}

// UpdateSemester handles PUT /api/v1/semesters/:id (admin)
func (h *SemesterHandler) UpdateSemester(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var semester model.Semester
	if err := h.db.First(&semester, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Semester not found")
		}
		return response.InternalServerError(c, "Failed to fetch semester")
	}

	if req.Section != "" {
		if !validation.ValidateSection(req.Section) {
			return response.BadRequest(c, "Invalid section. Expected format like 63_A")
		}
		semester.Section = req.Section
	}
	if req.Title != "" {
		semester.Title = validation.SanitizeString(req.Title)
	}
	if req.Description != "" {
		semester.Description = validation.SanitizeString(req.Description)
	}
	if req.IsActive != nil {
		semester.IsActive = *req.IsActive
	}

	if err := h.db.Save(&semester).Error; err != nil {
		return response.InternalServerError(c, "Failed to update semester")
	}

	h.invalidatePublicCache(c)

	return response.SuccessWithMessage(c, "Semester updated successfully", semester)
}

// DeleteSemester handles DELETE /api/v1/semesters/:id (admin)
// Deletion is blocked while the semester still carries courses.
func (h *SemesterHandler) DeleteSemester(c *fiber.Ctx) error {
	id := c.Params("id")

	var semester model.Semester
	if err := h.db.First(&semester, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Semester not found")
		}
		return response.InternalServerError(c, "Failed to fetch semester")
	}

	var courseCount int64
	if err := h.db.Model(&model.Course{}).
		Where("semester_id = ?", semester.ID).
		Count(&courseCount).Error; err != nil {
		return response.InternalServerError(c, "Failed to check semester courses")
	}
	if courseCount > 0 {
		return response.Conflict(c, "Cannot delete a semester that still has courses")
	}

	if err := h.db.Delete(&semester).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete semester")
	}

	h.invalidatePublicCache(c)

	return response.SuccessWithMessage(c, "Semester deleted successfully", nil)
}
