// Package respond provides the JSON envelope used by every API endpoint.
// All responses carry a success flag; failures additionally carry a
// human-readable message and data is omitted.
package respond

import (
	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/internal/platform/apperr"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a success envelope with the given payload.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// Message writes a success envelope with a message and no data.
func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: true, Message: msg})
}

// Fail writes a failure envelope with the given status and message.
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Message: msg})
}

// Error maps a service error to its HTTP status and writes a failure
// envelope. Unexpected faults are masked with a generic message so internal
// detail never reaches the caller.
func Error(c echo.Context, err error) error {
	status := apperr.Status(err)
	msg := err.Error()
	if status == 500 {
		msg = "internal server error"
	}
	return Fail(c, status, msg)
}
