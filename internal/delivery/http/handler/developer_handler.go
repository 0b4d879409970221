package handler

import (
	"errors"

	"developer-directory/internal/delivery/http/dto"
	"developer-directory/internal/delivery/http/middleware"
	"developer-directory/internal/pkg/response"
	"developer-directory/internal/pkg/validation"
	"developer-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DeveloperHandler struct {
	uc usecase.DeveloperUsecase
}

func NewDeveloperHandler(uc usecase.DeveloperUsecase) *DeveloperHandler {
	return &DeveloperHandler{uc: uc}
}

func (h *DeveloperHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *DeveloperHandler) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), usecase.ListDevelopersParams{
		Role:      c.Query("role"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	})
	if err != nil {
		return mapDeveloperUsecaseError(err, "Failed to fetch developers")
	}

	return response.Paginated(c, "",
		dto.NewDeveloperListResponse(page.Items),
		response.NewPagination(page.Total, page.Page, page.Limit),
	)
}

func (h *DeveloperHandler) Get(c fiber.Ctx) error {
	id, ok := developerID(c)
	if !ok {
		return developerNotFound(nil)
	}

	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapDeveloperUsecaseError(err, "Failed to fetch developer")
	}
	return response.Success(c, fiber.StatusOK, "", dto.NewDeveloperResponse(d))
}

func (h *DeveloperHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req usecase.DeveloperInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidPayload, nil, err)
	}

	d, err := h.uc.Create(c.Context(), userID, req)
	if err != nil {
		return mapDeveloperUsecaseError(err, "Failed to add developer")
	}
	return response.Success(c, fiber.StatusCreated, "Developer added successfully", dto.NewDeveloperResponse(d))
}

func (h *DeveloperHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	id, ok := developerID(c)
	if !ok {
		return developerNotFound(nil)
	}

	var req usecase.DeveloperInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidPayload, nil, err)
	}

	d, err := h.uc.Update(c.Context(), userID, id, req)
	if err != nil {
		return mapDeveloperUsecaseError(err, "Failed to update developer")
	}
	return response.Success(c, fiber.StatusOK, "Developer updated successfully", dto.NewDeveloperResponse(d))
}

func (h *DeveloperHandler) Delete(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	id, ok := developerID(c)
	if !ok {
		return developerNotFound(nil)
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapDeveloperUsecaseError(err, "Failed to delete developer")
	}
	return response.Success(c, fiber.StatusOK, "Developer deleted successfully", nil)
}

// Malformed ids cannot name an existing profile, so they read as not found.
func developerID(c fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func developerNotFound(cause error) error {
	return middleware.NewAppError(fiber.StatusNotFound, "Developer not found", nil, cause)
}

func mapDeveloperUsecaseError(err error, internalMessage string) error {
	if err == nil {
		return nil
	}

	var verr *validation.Errors
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidation, verr.Messages, err)
	case errors.Is(err, usecase.ErrDeveloperNotFound):
		return developerNotFound(err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, internalMessage, nil, err)
	}
}
