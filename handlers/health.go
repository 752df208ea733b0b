package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/courseportal/api/database"
	"github.com/courseportal/api/utils/response"
)

// HandleCheckHealth handles GET /ping. Reports 503 when the database is
// unreachable so load balancers can pull the instance.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database is unreachable")
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}
