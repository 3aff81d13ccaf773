package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByName(ctx context.Context, name string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
}

// Account represents a registered account. PasswordDigest never leaves the
// store/auth boundary; everything handed to sessions or templates goes through
// Summary.
type Account struct {
	ID             uuid.UUID
	Name           string
	PasswordDigest string
	Bio            string
	AvatarRef      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountSummary is the sanitized projection of an account used in sessions
// and post listings.
type AccountSummary struct {
	ID        uuid.UUID
	Name      string
	Bio       string
	AvatarRef string
}

// Summary strips credential material from the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		AvatarRef: a.AvatarRef,
	}
}
