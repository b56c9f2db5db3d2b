package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Debug controls whether 500 responses carry the underlying error text.
// Production deployments keep it off so internal details never leak.
var Debug bool

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListResponse extends the envelope with pagination totals.
type ListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset"`
}

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

func SuccessMessage(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Message: message, Data: data})
}

func Message(c *fiber.Ctx, message string) error {
	return c.JSON(Response{Success: true, Message: message})
}

func List(c *fiber.Ctx, data interface{}, total int64, limit, offset int) error {
	return c.JSON(ListResponse{Success: true, Data: data, Total: total, Limit: limit, Offset: offset})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{Success: false, Message: message})
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Response{Success: false, Message: message})
}

func Forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(Response{Success: false, Message: message})
}

func NotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(Response{Success: false, Message: message})
}

// ServerError answers 500. The raw error is attached only in debug mode.
func ServerError(c *fiber.Ctx, message string, err error) error {
	resp := Response{
		Success: false,
		Message: message,
		Error:   http.StatusText(fiber.StatusInternalServerError),
	}
	if Debug && err != nil {
		resp.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
