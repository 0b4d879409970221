package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"developer-directory/internal/domain/account"
	"developer-directory/internal/domain/developer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Accounts()

	a, err := repo.Create(ctx, account.Account{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)

	_, err = repo.Create(ctx, account.Account{Name: "Ada 2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, account.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, account.ErrNotFound)

	exists, err := repo.ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func seedDevelopers(t *testing.T, repo *DeveloperRepository, owner uuid.UUID, n int) {
	t.Helper()
	roles := developer.Roles
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), developer.Developer{
			UserID:     owner,
			Name:       fmt.Sprintf("Dev %02d", i),
			Role:       roles[i%len(roles)],
			TechStack:  []string{"Go"},
			Experience: i % 7,
		})
		require.NoError(t, err)
	}
}

func TestDeveloperRepository_Paging(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Developers()
	seedDevelopers(t, repo, uuid.New(), 25)

	sizes := []int{12, 12, 1, 0}
	seen := map[uuid.UUID]bool{}
	for i, want := range sizes {
		page, total, err := repo.List(ctx, developer.ListQuery{Page: i + 1, Limit: 12})
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
		assert.Len(t, page, want, "page %d", i+1)
		for _, d := range page {
			assert.False(t, seen[d.ID], "duplicate across pages")
			seen[d.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestDeveloperRepository_OwnerGuard(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Developers()
	owner, other := uuid.New(), uuid.New()

	d, err := repo.Create(ctx, developer.Developer{UserID: owner, Name: "Ada", Role: developer.RoleBackend, TechStack: []string{"Go"}})
	require.NoError(t, err)
	assert.False(t, d.JoiningDate.IsZero())

	d.UserID = other
	_, err = repo.Update(ctx, d)
	assert.ErrorIs(t, err, developer.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, d.ID, other), developer.ErrNotFound)

	d.UserID = owner
	d.Name = "Ada L."
	updated, err := repo.Update(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, d.JoiningDate, updated.JoiningDate)

	require.NoError(t, repo.Delete(ctx, d.ID, owner))
	_, err = repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, developer.ErrNotFound)
}

func TestDeveloperRepository_UpdateBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	clock := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repo := s.Developers()

	d, err := repo.Create(ctx, developer.Developer{UserID: uuid.New(), Name: "Ada", Role: developer.RoleBackend, TechStack: []string{"Go"}})
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	updated, err := repo.Update(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, clock, updated.UpdatedAt)
	assert.Equal(t, d.CreatedAt, updated.CreatedAt)
}

func TestDeveloperRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Developers()
	d, err := repo.Create(ctx, developer.Developer{UserID: uuid.New(), Name: "Ada", Role: developer.RoleBackend, TechStack: []string{"Go"}})
	require.NoError(t, err)

	d.TechStack[0] = "mutated"
	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.TechStack)
}
