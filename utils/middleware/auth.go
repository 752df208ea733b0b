package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/utils/auth"
	"github.com/courseportal/api/utils/response"
)

// AdminCookieName is the HTTP-only cookie set by the admin login endpoint.
const AdminCookieName = "admin_token"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
	}
}

// extractToken pulls the JWT out of the Authorization header, falling back to
// the admin session cookie so browser-based admin requests work without a
// bearer header.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(AdminCookieName)
}

// authenticate validates the token, checks the blacklist and token version,
// and returns the claims and user on success.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, *model.User, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil, nil, auth.ErrInvalidToken
	}

	claims, err := m.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}

	// Only access tokens grant API access
	if claims.TokenType != "access" {
		return nil, nil, auth.ErrInvalidToken
	}

	// Check if token is revoked (blacklisted)
	isRevoked, err := m.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if isRevoked {
		return nil, nil, auth.ErrInvalidToken
	}

	// Load user from database and verify token version
	var user model.User
	if err := m.db.First(&user, claims.UserID).Error; err != nil {
		return nil, nil, auth.ErrInvalidToken
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, auth.ErrInvalidToken
	}

	return claims, &user, nil
}

func storeUser(c *fiber.Ctx, claims *auth.Claims, user *model.User) {
	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)
	c.Locals("claims", claims)
	c.Locals("user", user)
	c.Locals("token_jti", claims.ID)
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if extractToken(c) == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		claims, user, err := m.authenticate(c)
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		storeUser(c, claims, user)
		return c.Next()
	}
}

// Optional is middleware that allows requests with or without a token
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.authenticate(c)
		if err != nil {
			return c.Next()
		}

		storeUser(c, claims, user)
		return c.Next()
	}
}

// RequireAdmin is middleware that requires a valid token with the admin role
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if extractToken(c) == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		claims, user, err := m.authenticate(c)
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		if claims.Role != model.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}

		storeUser(c, claims, user)
		return c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetTokenJTI extracts the token JTI from context
func GetTokenJTI(c *fiber.Ctx) (string, bool) {
	jti := c.Locals("token_jti")
	if jti == nil {
		return "", false
	}
	j, ok := jti.(string)
	return j, ok
}
