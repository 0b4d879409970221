package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"developer-directory/internal/domain/account"
	"developer-directory/internal/domain/developer"

	"github.com/google/uuid"
)

// Store keeps accounts and developers in process memory. It satisfies both
// account.Repository and developer.Repository through its two views.
type Store struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]account.Account
	byEmail    map[string]uuid.UUID
	developers map[uuid.UUID]developer.Developer

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]account.Account),
		byEmail:    make(map[string]uuid.UUID),
		developers: make(map[uuid.UUID]developer.Developer),
		now:        time.Now,
	}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{s: s}
}

func (s *Store) Developers() *DeveloperRepository {
	return &DeveloperRepository{s: s}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) Create(_ context.Context, a account.Account) (account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byEmail[a.Email]; ok {
		return account.Account{}, account.ErrEmailTaken
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.s.now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	r.s.accounts[a.ID] = a
	r.s.byEmail[a.Email] = a.ID
	return a, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return r.s.accounts[id], nil
}

func (r *AccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.byEmail[email]
	return ok, nil
}

type DeveloperRepository struct {
	s *Store
}

func (r *DeveloperRepository) List(_ context.Context, q developer.ListQuery) ([]developer.Developer, int64, error) {
	q = q.Normalize()

	r.s.mu.RLock()
	matched := make([]developer.Developer, 0, len(r.s.developers))
	for _, d := range r.s.developers {
		if q.Matches(d) {
			matched = append(matched, cloneDeveloper(d))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return q.Less(matched[i], matched[j]) })

	total := int64(len(matched))
	start := q.Offset()
	if start >= len(matched) {
		return []developer.Developer{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *DeveloperRepository) GetByID(_ context.Context, id uuid.UUID) (developer.Developer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.developers[id]
	if !ok {
		return developer.Developer{}, developer.ErrNotFound
	}
	return cloneDeveloper(d), nil
}

func (r *DeveloperRepository) Create(_ context.Context, d developer.Developer) (developer.Developer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := r.s.now().UTC()
	d.JoiningDate, d.CreatedAt, d.UpdatedAt = now, now, now

	d = cloneDeveloper(d)
	r.s.developers[d.ID] = d
	return cloneDeveloper(d), nil
}

func (r *DeveloperRepository) Update(_ context.Context, d developer.Developer) (developer.Developer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.developers[d.ID]
	if !ok || cur.UserID != d.UserID {
		return developer.Developer{}, developer.ErrNotFound
	}

	cur.Name = d.Name
	cur.Role = d.Role
	cur.TechStack = d.TechStack
	cur.Experience = d.Experience
	cur.Description = d.Description
	cur.PhotoURL = d.PhotoURL
	cur.UpdatedAt = r.s.now().UTC()

	cur = cloneDeveloper(cur)
	r.s.developers[cur.ID] = cur
	return cloneDeveloper(cur), nil
}

func (r *DeveloperRepository) Delete(_ context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.developers[id]
	if !ok || cur.UserID != ownerID {
		return developer.ErrNotFound
	}
	delete(r.s.developers, id)
	return nil
}

func cloneDeveloper(d developer.Developer) developer.Developer {
	d.TechStack = append([]string{}, d.TechStack...)
	if d.Description != nil {
		v := *d.Description
		d.Description = &v
	}
	if d.PhotoURL != nil {
		v := *d.PhotoURL
		d.PhotoURL = &v
	}
	return d
}
