package postgres

import (
	"context"
	"fmt"

	"developer-directory/internal/database"
	"developer-directory/internal/domain/account"

	"github.com/google/uuid"
)

type AccountRepository struct {
	db database.DB
}

func NewAccountRepository(db database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, name, email, password_hash, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, a account.Account) (account.Account, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO accounts (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+accountColumns,
		a.ID, a.Name, a.Email, a.PasswordHash,
	)
	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return account.Account{}, account.ErrEmailTaken
		}
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanAccount(row database.Row) (account.Account, error) {
	var a account.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isNoRows(err) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}
