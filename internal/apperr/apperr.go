// Package apperr is the single translation point between internal failures
// and the uniform response envelope. Handlers and middleware return *Error
// values; the Fiber error handler renders them, and anything unrecognized
// becomes a logged 500 with a generic message.
package apperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Error struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func BadRequest(code, message string) *Error {
	return New(fiber.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(fiber.StatusUnauthorized, code, message)
}

func NotFound(code, message string) *Error {
	return New(fiber.StatusNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(fiber.StatusConflict, code, message)
}

func Unprocessable(code, message string) *Error {
	return New(fiber.StatusUnprocessableEntity, code, message)
}

func Internal(code, message string) *Error {
	return New(fiber.StatusInternalServerError, code, message)
}

// envelope matches the success envelope's field set so every response body
// has the same shape.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// Handler is the Fiber ErrorHandler. 5xx details are logged with request
// context and never sent to the caller.
func Handler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		code := "INTERNAL_ERROR"
		message := "Internal server error"
		var details any

		switch e := err.(type) {
		case *Error:
			status = e.Status
			code = e.Code
			message = e.Message
			details = e.Details
		case *fiber.Error:
			status = e.Code
			switch status {
			case fiber.StatusBadRequest:
				code = "BAD_REQUEST"
			case fiber.StatusNotFound:
				code = "ROUTE_NOT_FOUND"
			case fiber.StatusTooManyRequests:
				code = "RATE_LIMITED"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			message = e.Message
		default:
			// Services translate record-not-found into their own sentinels;
			// this catches any raw lookup error that slips through.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = fiber.StatusNotFound
				code = "NOT_FOUND"
				message = "Resource not found"
			}
		}

		if status >= 500 {
			slog.Error("unhandled server error",
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error(),
			)
			message = "Internal server error"
			details = nil
		}

		return c.Status(status).JSON(envelope{
			Success: false,
			Error:   message,
			Code:    code,
			Details: details,
		})
	}
}
