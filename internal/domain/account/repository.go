package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already taken")
)

type Repository interface {
	Create(ctx context.Context, a Account) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
