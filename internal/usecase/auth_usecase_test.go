package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"developer-directory/internal/infrastructure/persistence/memory"
	"developer-directory/internal/pkg/jwt"
	"developer-directory/internal/pkg/metrics"
	"developer-directory/internal/pkg/password"
	ucauth "developer-directory/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (*Auth, *jwt.HMACService, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	tokens := jwt.NewHMACService("test-secret", time.Hour)
	uc := NewAuthUsecase(
		memory.NewStore().Accounts(),
		password.New("bcrypt", bcrypt.MinCost),
		nil,
		tokens,
		metrics.New(reg),
	)
	return uc, tokens, reg
}

func TestAuth_SignupLoginMe(t *testing.T) {
	ctx := context.Background()
	uc, tokens, reg := newAuth(t)

	a, tok, err := uc.Signup(ctx, ucauth.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := tokens.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)

	_, tok, err = uc.Login(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, _, err = uc.Login(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	me, err := uc.Me(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
	assert.Empty(t, me.PasswordHash)

	_, err = uc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)

	want := `
# HELP auth_failures_total Count of failed authentications
# TYPE auth_failures_total counter
auth_failures_total{method="login"} 1
# HELP auth_token_generations_total Count of auth tokens created
# TYPE auth_token_generations_total counter
auth_token_generations_total{method="login"} 1
auth_token_generations_total{method="signup"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want),
		"auth_failures_total", "auth_token_generations_total"))
}

func TestAuth_SignupDuplicate(t *testing.T) {
	uc, _, _ := newAuth(t)
	in := ucauth.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"}

	_, _, err := uc.Signup(context.Background(), in)
	require.NoError(t, err)

	_, tok, err := uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)
	assert.Empty(t, tok)
}
