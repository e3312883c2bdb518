package middleware

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bounties-api/internal/domain"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"
	var fields map[string]string

	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		errorCode = codeForStatus(code)
	case errors.As(err, &validationErrs):
		code = fiber.StatusUnprocessableEntity
		message = "Validation failed"
		errorCode = "VALIDATION_ERROR"
		fields = make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
	case errors.Is(err, domain.ErrNotFound):
		code, message, errorCode = fiber.StatusNotFound, "Not found", "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthenticated):
		code, message, errorCode = fiber.StatusUnauthorized, err.Error(), "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		code, message, errorCode = fiber.StatusForbidden, err.Error(), "FORBIDDEN"
	case errors.Is(err, domain.ErrInvalidIdentity), errors.Is(err, domain.ErrInvalidInput):
		code, message, errorCode = fiber.StatusBadRequest, err.Error(), "BAD_REQUEST"
	case errors.Is(err, domain.ErrUnavailable):
		code, message, errorCode = fiber.StatusServiceUnavailable, err.Error(), "UNAVAILABLE"
	}

	traceID := uuid.New().String()[:8]

	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("trace_id", traceID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		Fields:  fields,
		TraceID: traceID,
	})
}

func codeForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusServiceUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
