package enrollment

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	enrollsvc "github.com/courseportal/api/services/enrollment"
	"github.com/courseportal/api/utils/middleware"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

// EnrollmentHandler handles enrollment lifecycle requests
type EnrollmentHandler struct {
	db        *gorm.DB
	service   *enrollsvc.Service
	validator *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(db *gorm.DB) *EnrollmentHandler {
	return &EnrollmentHandler{
		db:        db,
		service:   enrollsvc.NewService(db),
		validator: validation.NewValidator(),
	}
}

// EnrollRequest represents an enroll/unenroll request body
type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required,min=1"`
}

// Enroll handles POST /api/v1/courses/enroll
// Re-enrolling a previously dropped course reactivates the old row,
// keeping accumulated progress.
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	enrollment, err := h.service.Enroll(userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, enrollsvc.ErrCourseNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, enrollsvc.ErrAlreadyEnrolled):
			return response.Conflict(c, "Already enrolled in this course")
		default:
			return response.InternalServerError(c, "Failed to enroll in course")
		}
	}

	if err := h.db.Preload("Course").Preload("Course.Semester").
		First(enrollment, enrollment.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollment")
	}

	return response.Created(c, enrollment)
}

// Unenroll handles DELETE /api/v1/courses/unenroll
// The enrollment row survives with status dropped.
func (h *EnrollmentHandler) Unenroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	enrollment, err := h.service.Unenroll(userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, enrollsvc.ErrNotEnrolled):
			return response.NotFound(c, "Not enrolled in this course")
		case errors.Is(err, enrollsvc.ErrEnrollmentNotActive):
			return response.Conflict(c, "Enrollment is not active")
		default:
			return response.InternalServerError(c, "Failed to unenroll from course")
		}
	}

	return response.SuccessWithMessage(c, "Successfully unenrolled", enrollment)
}

// ListEnrolled handles GET /api/v1/courses/enrolled
// Auth is optional: an authenticated user gets their own enrollments, an
// anonymous caller may name a user via the user_id query parameter, and a
// request identifying nobody gets an empty list rather than an error.
func (h *EnrollmentHandler) ListEnrolled(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		if raw := c.Query("user_id"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return response.BadRequest(c, "Invalid user_id")
			}
			userID = uint(parsed)
		}
	}

	if userID == 0 {
		return response.Success(c, []model.Enrollment{})
	}

	enrollments, err := h.service.ListActive(userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollments")
	}

	return response.Success(c, enrollments)
}
