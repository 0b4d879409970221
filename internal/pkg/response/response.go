package response

import (
	"math"

	"github.com/gofiber/fiber/v3"
)

type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination derives the page count; a zero total yields zero pages.
func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 && total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Authentication required"
	MessageForbidden           = "Unauthorized"
	MessageNotFound            = "Not found"
	MessageRouteNotFound       = "Route not found"
	MessageConflict            = "Conflict"
	MessageValidation          = "Validation error"
	MessageInvalidPayload      = "Invalid request payload"
	MessageInternalServerError = "Internal server error"
	MessageError               = "Error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Paginated(c fiber.Ctx, message string, data any, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data, Pagination: &p})
}

func Error(c fiber.Ctx, status int, message string, errs []string) error {
	st := normalizeStatus(status)
	msg := message
	if msg == "" {
		msg = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(Envelope{Success: false, Message: msg, Errors: errs})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
