package dto

import (
	"developer-directory/internal/domain/account"

	"github.com/google/uuid"
)

type AccountResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AuthResponse struct {
	User  AccountResponse `json:"user"`
	Token string          `json:"token"`
}

func NewAccountResponse(a account.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Name: a.Name, Email: a.Email}
}
