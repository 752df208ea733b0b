package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/utils/middleware"
	"github.com/courseportal/api/utils/response"
	"github.com/courseportal/api/utils/validation"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Batch     string `json:"batch,omitempty"`
	Section   string `json:"section,omitempty"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, toUserResponse(&user))
}

// UpdateProfile updates the current user's profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	if req.Name != "" {
		user.Name = validation.SanitizeString(req.Name)
	}
	if req.StudentID != "" {
		user.StudentID = req.StudentID
	}
	if req.Section != "" {
		if !validation.ValidateSection(req.Section) {
			return response.BadRequest(c, "Invalid section. Expected format like 63_A")
		}
		user.Section = req.Section
		user.Batch = model.BatchFromSection(req.Section)
	}
	if req.Batch != "" {
		user.Batch = req.Batch
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, toUserResponse(&user))
}
