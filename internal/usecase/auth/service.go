package auth

import (
	"context"
	"errors"
	"strings"

	"developer-directory/internal/domain/account"
	"developer-directory/internal/pkg/password"
	"developer-directory/internal/pkg/validation"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInternal               = errors.New("internal error")
)

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Service struct {
	accounts account.Repository
	hasher   password.Hasher
	validate *validation.Validator
}

func NewService(accounts account.Repository, hasher password.Hasher, v *validation.Validator) *Service {
	if v == nil {
		v = validation.New()
	}
	return &Service{accounts: accounts, hasher: hasher, validate: v}
}

func (s *Service) Register(ctx context.Context, in SignupInput) (account.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return account.Account{}, err
	}

	exists, err := s.accounts.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return account.Account{}, errors.Join(ErrInternal, err)
	}
	if exists {
		return account.Account{}, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return account.Account{}, errors.Join(ErrInternal, err)
	}

	created, err := s.accounts.Create(ctx, account.Account{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return account.Account{}, ErrEmailAlreadyRegistered
		}
		return account.Account{}, errors.Join(ErrInternal, err)
	}
	return sanitize(created), nil
}

// Login reports ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, in LoginInput) (account.Account, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return account.Account{}, err
	}

	a, err := s.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrInvalidCredentials
		}
		return account.Account{}, errors.Join(ErrInternal, err)
	}

	ok, err := s.hasher.Verify(a.PasswordHash, in.Password)
	if err != nil {
		return account.Account{}, errors.Join(ErrInternal, err)
	}
	if !ok {
		return account.Account{}, ErrInvalidCredentials
	}

	return sanitize(a), nil
}

// Emails are compared exactly as stored; only surrounding whitespace is dropped.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func sanitize(a account.Account) account.Account {
	a.PasswordHash = ""
	return a
}
