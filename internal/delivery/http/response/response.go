// Package response defines the wire shapes shared by all handlers.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the single failure payload shape. Clients match on the message
// string, so messages are stable.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes a success payload as-is.
func JSON(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error writes the {"error": message} failure payload.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{Error: message})
}
