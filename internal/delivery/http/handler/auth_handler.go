package handler

import (
	"errors"

	"developer-directory/internal/delivery/http/dto"
	"developer-directory/internal/delivery/http/middleware"
	"developer-directory/internal/pkg/response"
	"developer-directory/internal/pkg/validation"
	"developer-directory/internal/usecase"
	ucauth "developer-directory/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts the public endpoints; /me is mounted separately behind auth.
func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req ucauth.SignupInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidPayload, nil, err)
	}

	a, tok, err := h.uc.Signup(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "User created successfully", dto.AuthResponse{
		User:  dto.NewAccountResponse(a),
		Token: tok,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req ucauth.LoginInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidPayload, nil, err)
	}

	a, tok, err := h.uc.Login(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Login successful", dto.AuthResponse{
		User:  dto.NewAccountResponse(a),
		Token: tok,
	})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	a, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.NewAccountResponse(a))
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *validation.Errors
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidation, verr.Messages, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
