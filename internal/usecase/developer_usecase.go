package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"developer-directory/internal/domain/developer"
	"developer-directory/internal/pkg/metrics"
	"developer-directory/internal/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DeveloperInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Role        string   `json:"role" validate:"required,oneof=Frontend Backend Full-Stack"`
	TechStack   []string `json:"techStack" validate:"required,min=1,dive,required"`
	Experience  *float64 `json:"experience" validate:"required,integer,min=0,max=50"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	PhotoURL    *string  `json:"photoUrl" validate:"omitempty,url"`
}

// ListDevelopersParams carries the raw query string values.
type ListDevelopersParams struct {
	Role      string
	Search    string
	SortBy    string
	SortOrder string
	Page      string
	Limit     string
}

type DeveloperPage struct {
	Items []developer.Developer `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

type DeveloperUsecase interface {
	List(ctx context.Context, params ListDevelopersParams) (DeveloperPage, error)
	Get(ctx context.Context, id uuid.UUID) (developer.Developer, error)
	Create(ctx context.Context, ownerID uuid.UUID, in DeveloperInput) (developer.Developer, error)
	Update(ctx context.Context, callerID, id uuid.UUID, in DeveloperInput) (developer.Developer, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

type Developers struct {
	repo     developer.Repository
	validate *validation.Validator
	cache    ListCache
	cacheTTL time.Duration
	notifier DeveloperNotifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

type DeveloperOption func(*Developers)

func WithListCache(c ListCache, ttl time.Duration) DeveloperOption {
	return func(u *Developers) {
		u.cache = c
		u.cacheTTL = ttl
	}
}

func WithNotifier(n DeveloperNotifier) DeveloperOption {
	return func(u *Developers) { u.notifier = n }
}

func WithMetrics(m *metrics.Metrics) DeveloperOption {
	return func(u *Developers) { u.metrics = m }
}

func WithLogger(l *zap.Logger) DeveloperOption {
	return func(u *Developers) {
		if l != nil {
			u.logger = l
		}
	}
}

func NewDeveloperUsecase(repo developer.Repository, v *validation.Validator, opts ...DeveloperOption) *Developers {
	if v == nil {
		v = validation.New()
	}
	u := &Developers{repo: repo, validate: v, logger: zap.NewNop()}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Developers) List(ctx context.Context, params ListDevelopersParams) (DeveloperPage, error) {
	q, err := parseListParams(params)
	if err != nil {
		return DeveloperPage{}, err
	}

	key := DeveloperListCacheKey(q)
	if u.cache != nil {
		var cached DeveloperPage
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Debug("developer list cache read failed", zap.Error(err))
		}
		if hit {
			if cached.Items == nil {
				cached.Items = []developer.Developer{}
			}
			return cached, nil
		}
	}

	items, total, err := u.repo.List(ctx, q)
	if err != nil {
		return DeveloperPage{}, errors.Join(ErrInternal, err)
	}
	page := DeveloperPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, page, u.cacheTTL); err != nil {
			u.logger.Debug("developer list cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

func parseListParams(p ListDevelopersParams) (developer.ListQuery, error) {
	var (
		q    developer.ListQuery
		msgs []string
	)

	if raw := strings.TrimSpace(p.Role); raw != "" {
		r, ok := developer.ParseRole(raw)
		if !ok {
			msgs = append(msgs, "role must be one of [Frontend, Backend, Full-Stack]")
		} else {
			q.Role = &r
		}
	}

	q.Search = p.Search
	q.SortBy = developer.ParseSortField(p.SortBy)
	q.SortOrder = developer.ParseSortOrder(p.SortOrder)

	parseInt := func(name, raw string) int {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			msgs = append(msgs, name+" must be a number")
			return 0
		}
		return n
	}
	q.Page = parseInt("page", p.Page)
	q.Limit = parseInt("limit", p.Limit)

	if len(msgs) > 0 {
		return developer.ListQuery{}, validation.NewErrors(msgs...)
	}
	return q.Normalize(), nil
}

func (u *Developers) Get(ctx context.Context, id uuid.UUID) (developer.Developer, error) {
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, developer.ErrNotFound) {
			return developer.Developer{}, ErrDeveloperNotFound
		}
		return developer.Developer{}, errors.Join(ErrInternal, err)
	}
	return d, nil
}

func (u *Developers) Create(ctx context.Context, ownerID uuid.UUID, in DeveloperInput) (developer.Developer, error) {
	d, err := u.fromInput(in)
	if err != nil {
		return developer.Developer{}, err
	}
	d.ID = uuid.New()
	d.UserID = ownerID

	created, err := u.repo.Create(ctx, d)
	if err != nil {
		return developer.Developer{}, errors.Join(ErrInternal, err)
	}

	u.afterMutation(ctx, "created", created.ID, ownerID)
	return created, nil
}

func (u *Developers) Update(ctx context.Context, callerID, id uuid.UUID, in DeveloperInput) (developer.Developer, error) {
	d, err := u.fromInput(in)
	if err != nil {
		return developer.Developer{}, err
	}

	if _, err := authorizeOwner(ctx, u.repo, id, callerID); err != nil {
		return developer.Developer{}, err
	}

	d.ID = id
	d.UserID = callerID
	updated, err := u.repo.Update(ctx, d)
	if err != nil {
		if errors.Is(err, developer.ErrNotFound) {
			return developer.Developer{}, ErrDeveloperNotFound
		}
		return developer.Developer{}, errors.Join(ErrInternal, err)
	}

	u.afterMutation(ctx, "updated", id, callerID)
	return updated, nil
}

func (u *Developers) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := authorizeOwner(ctx, u.repo, id, callerID); err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, developer.ErrNotFound) {
			return ErrDeveloperNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	u.afterMutation(ctx, "deleted", id, callerID)
	return nil
}

func (u *Developers) fromInput(in DeveloperInput) (developer.Developer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	if in.TechStack != nil {
		stack := make([]string, len(in.TechStack))
		for i, t := range in.TechStack {
			stack[i] = strings.TrimSpace(t)
		}
		in.TechStack = stack
	}
	in.Description = trimOptional(in.Description)
	in.PhotoURL = trimOptional(in.PhotoURL)

	if err := u.validate.Struct(in); err != nil {
		return developer.Developer{}, err
	}

	role, _ := developer.ParseRole(in.Role)
	return developer.Developer{
		Name:        in.Name,
		Role:        role,
		TechStack:   in.TechStack,
		Experience:  int(*in.Experience),
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
	}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (u *Developers) afterMutation(ctx context.Context, action string, id, ownerID uuid.UUID) {
	u.metrics.DeveloperMutated(action)
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, developerListKeyPrefix+"*"); err != nil {
			u.logger.Warn("developer list cache invalidation failed", zap.Error(err))
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyDeveloperChanged(action, id, ownerID)
	}
}
