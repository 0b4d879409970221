package usecase

import (
	"context"
	"errors"

	"developer-directory/internal/domain/account"
	"developer-directory/internal/pkg/jwt"
	"developer-directory/internal/pkg/metrics"
	"developer-directory/internal/pkg/password"
	"developer-directory/internal/pkg/validation"
	ucauth "developer-directory/internal/usecase/auth"

	"github.com/google/uuid"
)

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (account.Account, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (account.Account, string, error)
	Me(ctx context.Context, accountID uuid.UUID) (account.Account, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	accounts account.Repository
	jwt      jwt.Service
	metrics  *metrics.Metrics
}

func NewAuthUsecase(accounts account.Repository, hasher password.Hasher, v *validation.Validator, jwtSvc jwt.Service, m *metrics.Metrics) *Auth {
	return &Auth{
		authSvc:  ucauth.NewService(accounts, hasher, v),
		accounts: accounts,
		jwt:      jwtSvc,
		metrics:  m,
	}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (account.Account, string, error) {
	a, err := u.authSvc.Register(ctx, in)
	if err != nil {
		u.metrics.AuthFailed("signup")
		return account.Account{}, "", err
	}
	u.metrics.AuthSucceeded("signup")

	tok, err := u.issue(a, "signup")
	if err != nil {
		return account.Account{}, "", err
	}
	return a, tok, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (account.Account, string, error) {
	a, err := u.authSvc.Login(ctx, in)
	if err != nil {
		u.metrics.AuthFailed("login")
		return account.Account{}, "", err
	}
	u.metrics.AuthSucceeded("login")

	tok, err := u.issue(a, "login")
	if err != nil {
		return account.Account{}, "", err
	}
	return a, tok, nil
}

func (u *Auth) Me(ctx context.Context, accountID uuid.UUID) (account.Account, error) {
	a, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrUnauthorized
		}
		return account.Account{}, errors.Join(ErrInternal, err)
	}
	a.PasswordHash = ""
	return a, nil
}

func (u *Auth) issue(a account.Account, method string) (string, error) {
	tok, err := u.jwt.GenerateToken(a.ID, a.Email)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	u.metrics.TokenGenerated(method)
	return tok, nil
}
