package middleware

import (
	"errors"

	"developer-directory/internal/pkg/response"
	"developer-directory/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	Errors     []string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, errs []string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Errors: errs, Cause: cause}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Stack("stack"),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, errs := normalizeError(err)
		if status >= 500 {
			m.logger.Error("request failed",
				zap.Int("status", status),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return response.Error(c, status, msg, errs)
	}
}

// NotFound terminates the chain for unmatched routes.
func NotFound() fiber.Handler {
	return func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, response.MessageRouteNotFound, nil, nil)
	}
}

func normalizeError(err error) (int, string, []string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status < 400 || status > 599 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, appErr.Errors
	}

	var verr *validation.Errors
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, response.MessageValidation, verr.Messages
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		switch {
		case status <= 0 || status >= 500:
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		case status == fiber.StatusNotFound:
			return status, response.MessageRouteNotFound, nil
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
