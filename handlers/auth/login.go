package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/courseportal/api/model"
	authutil "github.com/courseportal/api/utils/auth"
	"github.com/courseportal/api/utils/middleware"
	"github.com/courseportal/api/utils/response"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

// authenticateCredentials checks email and password, recording brute force
// attempts either way. Callers get the same error for a missing user and a
// wrong password.
func (h *AuthHandler) authenticateCredentials(c *fiber.Ctx, email, password string) (*model.User, error) {
	ip := c.IP()

	var user model.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip, email)
		}
		return nil, authutil.ErrInvalidToken
	}

	if err := authutil.VerifyPassword(user.PasswordHash, password); err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip, email)
		}
		return nil, authutil.ErrInvalidToken
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	return &user, nil
}

func (h *AuthHandler) issueTokens(user *model.User) (*LoginResponse, error) {
	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         toUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    24 * 60 * 60,
	}, nil
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	user, err := h.authenticateCredentials(c, req.Email, req.Password)
	if err != nil {
		return response.Unauthorized(c, "Invalid email or password")
	}

	res, err := h.issueTokens(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Success(c, res)
}

// AdminLogin handles login for admin accounts. On success the access token
// is also set as an HTTP-only cookie so the admin dashboard can authenticate
// without storing the token in script-accessible storage.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	user, err := h.authenticateCredentials(c, req.Email, req.Password)
	if err != nil {
		return response.Unauthorized(c, "Invalid email or password")
	}

	if !user.IsAdmin() {
		return response.Forbidden(c, "Admin access required")
	}

	res, err := h.issueTokens(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    res.AccessToken,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
		Path:     "/",
	})

	return response.Success(c, res)
}
