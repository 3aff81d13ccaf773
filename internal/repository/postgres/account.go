package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell/inkwell/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// uniqueViolation is the postgres error code for unique index violations.
const uniqueViolation = "23505"

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, name, password_digest, bio, avatar_ref, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, password_digest, bio, avatar_ref, created_at, updated_at`

	var saved model.Account
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.PasswordDigest, account.Bio, account.AvatarRef,
		account.CreatedAt, account.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.PasswordDigest, &saved.Bio, &saved.AvatarRef,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Account{}, model.ErrDuplicateName
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) GetByName(ctx context.Context, name string) (model.Account, error) {
	var account model.Account
	query := `SELECT id, name, password_digest, bio, avatar_ref, created_at, updated_at
			  FROM accounts WHERE name = $1`

	err := r.db.QueryRow(ctx, query, name).Scan(
		&account.ID, &account.Name, &account.PasswordDigest, &account.Bio, &account.AvatarRef,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by name: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var account model.Account
	query := `SELECT id, name, password_digest, bio, avatar_ref, created_at, updated_at
			  FROM accounts WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.PasswordDigest, &account.Bio, &account.AvatarRef,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}
