package apierror

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Response represents the structure of every error response.
type Response struct {
	// Message is the public error description.
	Message string `json:"message"`
	// Timestamp is when the error was produced, in RFC3339.
	Timestamp string `json:"timestamp"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id,omitempty"`
}

// now is replaced in tests.
var now = time.Now

// RayID returns the request id set by the requestid middleware, or "unknown".
func RayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		return id
	}
	return "unknown"
}

// Write sends an error body with the given status.
func Write(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Message:   message,
		Timestamp: now().UTC().Format(time.RFC3339),
		RayID:     RayID(c),
	})
}
