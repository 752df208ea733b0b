package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/services/enrollment"
	"github.com/courseportal/api/utils/middleware"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

// CourseHandler handles course catalog requests
type CourseHandler struct {
	db          *gorm.DB
	validator   *validation.Validator
	enrollments *enrollment.Service
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, enrollments *enrollment.Service) *CourseHandler {
	return &CourseHandler{
		db:          db,
		validator:   validation.NewValidator(),
		enrollments: enrollments,
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	SemesterID    uint    `json:"semester_id" validate:"required,min=1"`
	Title         string  `json:"title" validate:"required,min=3,max=255"`
	CourseCode    string  `json:"course_code" validate:"required,min=2,max=50"`
	TeacherName   string  `json:"teacher_name" validate:"omitempty,max=255"`
	TeacherEmail  string  `json:"teacher_email" validate:"omitempty,email"`
	Credits       float64 `json:"credits" validate:"omitempty,min=0,max=12"`
	IsHighlighted bool    `json:"is_highlighted"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	SemesterID    *uint    `json:"semester_id" validate:"omitempty,min=1"`
	Title         string   `json:"title" validate:"omitempty,min=3,max=255"`
	CourseCode    string   `json:"course_code" validate:"omitempty,min=2,max=50"`
	TeacherName   *string  `json:"teacher_name" validate:"omitempty,max=255"`
	TeacherEmail  *string  `json:"teacher_email" validate:"omitempty,email"`
	Credits       *float64 `json:"credits" validate:"omitempty,min=0,max=12"`
	IsHighlighted *bool    `json:"is_highlighted"`
	IsActive      *bool    `json:"is_active"`
}

// ListCourses handles GET /api/v1/courses
// Supports semester_id, highlighted, active and search query filters.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Course{})

	if semesterID := c.Query("semester_id"); semesterID != "" {
		query = query.Where("semester_id = ?", semesterID)
	}
	if highlighted := c.Query("highlighted"); highlighted != "" {
		query = query.Where("is_highlighted = ?", highlighted == "true")
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	} else {
		query = query.Where("is_active = ?", true)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + validation.SanitizeString(search) + "%"
		query = query.Where("title ILIKE ? OR course_code ILIKE ? OR teacher_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	courses := []model.Course{}
	if err := query.Preload("Semester").
		Order("is_highlighted DESC, course_code ASC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/v1/courses/:id
// Topics are preloaded in display order together with their content.
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	err := h.db.
		Preload("Semester").
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Topics.Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Topics.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		First(&course, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	// Authenticated callers see whether they hold an active enrollment
	if userID, ok := middleware.GetUserID(c); ok && userID != 0 {
		if enrolled, err := h.enrollments.IsEnrolled(userID, course.ID); err == nil {
			course.IsEnrolled = &enrolled
		}
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses (admin)
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Semester must exist
	var semester model.Semester
	if err := h.db.First(&semester, req.SemesterID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Semester not found")
		}
		return response.InternalServerError(c, "Failed to verify semester")
	}

	var existing model.Course
	if err := h.db.Where("course_code = ?", req.CourseCode).First(&existing).Error; err == nil {
		return response.Conflict(c, "Course with this code already exists")
	}

	credits := req.Credits
	if credits == 0 {
		credits = 3
	}

	course := model.Course{
		SemesterID:    req.SemesterID,
		Title:         validation.SanitizeString(req.Title),
		CourseCode:    req.CourseCode,
		TeacherName:   validation.SanitizeString(req.TeacherName),
		TeacherEmail:  req.TeacherEmail,
		Credits:       credits,
		IsHighlighted: req.IsHighlighted,
		IsActive:      true,
	}

	if err := h.db.Create(&course).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return response.Conflict(c, "Course with this code already exists")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	if err := h.db.Preload("Semester").First(&course, course.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch created course")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id (admin)
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if req.SemesterID != nil {
		var semester model.Semester
		if err := h.db.First(&semester, *req.SemesterID).Error; err != nil {
			return response.NotFound(c, "Semester not found")
		}
		course.SemesterID = *req.SemesterID
	}
	if req.CourseCode != "" && req.CourseCode != course.CourseCode {
		var existing model.Course
		if err := h.db.Where("course_code = ? AND id != ?", req.CourseCode, course.ID).
			First(&existing).Error; err == nil {
			return response.Conflict(c, "Course with this code already exists")
		}
		course.CourseCode = req.CourseCode
	}
	if req.Title != "" {
		course.Title = validation.SanitizeString(req.Title)
	}
	if req.TeacherName != nil {
		course.TeacherName = validation.SanitizeString(*req.TeacherName)
	}
	if req.TeacherEmail != nil {
		course.TeacherEmail = *req.TeacherEmail
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.IsHighlighted != nil {
		course.IsHighlighted = *req.IsHighlighted
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	if err := h.db.Preload("Semester").First(&course, course.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch updated course")
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id (admin)
// Deletion is blocked while topics still exist under the course.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var topicCount int64
	if err := h.db.Model(&model.Topic{}).
		Where("course_id = ?", course.ID).
		Count(&topicCount).Error; err != nil {
		return response.InternalServerError(c, "Failed to check course topics")
	}
	if topicCount > 0 {
		return response.Conflict(c, "Cannot delete a course that still has topics")
	}

	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
