package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionDuration is the TTL for browser sessions.
const SessionDuration = 24 * time.Hour

// SessionStore persists server-held browser sessions.
type SessionStore interface {
	Create(ctx context.Context) (Session, error)
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	SetAccount(ctx context.Context, id uuid.UUID, account AccountSummary) error
	ClearAccount(ctx context.Context, id uuid.UUID) error
	Destroy(ctx context.Context, id uuid.UUID) error
	AddFlash(ctx context.Context, id uuid.UUID, flash Flash) error
	ConsumeFlashes(ctx context.Context, id uuid.UUID) ([]Flash, error)
}

// Session describes a server-held browser session. Account is nil for
// anonymous visitors and never carries the password digest.
type Session struct {
	ID        uuid.UUID
	Account   *AccountSummary
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Authenticated reports whether the session holds an account snapshot.
func (s Session) Authenticated() bool {
	return s.Account != nil
}

// FlashSeverity classifies a flash message.
type FlashSeverity string

const (
	// FlashSuccess marks a confirmation message.
	FlashSuccess FlashSeverity = "success"
	// FlashError marks a user-correctable failure message.
	FlashError FlashSeverity = "error"
)

// Flash is a one-shot message rendered on the next page and discarded.
type Flash struct {
	Severity FlashSeverity
	Message  string
}
