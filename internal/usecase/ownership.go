package usecase

import (
	"context"
	"errors"

	"developer-directory/internal/domain/developer"

	"github.com/google/uuid"
)

// authorizeOwner loads the developer and checks that callerID owns it.
// A missing row wins over a foreign owner.
func authorizeOwner(ctx context.Context, repo developer.Repository, id, callerID uuid.UUID) (developer.Developer, error) {
	d, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, developer.ErrNotFound) {
			return developer.Developer{}, ErrDeveloperNotFound
		}
		return developer.Developer{}, errors.Join(ErrInternal, err)
	}
	if !d.OwnedBy(callerID) {
		return developer.Developer{}, ErrForbidden
	}
	return d, nil
}
