package developer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("developer not found")

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Developer, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Developer, error)
	Create(ctx context.Context, d Developer) (Developer, error)
	// Update replaces the mutable fields of the row matching both d.ID and d.UserID.
	Update(ctx context.Context, d Developer) (Developer, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}
