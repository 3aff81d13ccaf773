package service

import (
	"github.com/google/uuid"

	"github.com/inkwell/inkwell/internal/model"
)

// RedirectHint tells the boundary layer where to send a denied request. The
// service layer never picks HTTP statuses or paths itself.
type RedirectHint string

const (
	// HintSignIn sends the visitor to the sign-in page.
	HintSignIn RedirectHint = "signin"
	// HintBack sends the visitor back to the page they came from.
	HintBack RedirectHint = "back"
)

// Decision is the outcome of an authorization gate.
type Decision struct {
	Allowed bool
	Reason  string
	Hint    RedirectHint
}

var allowed = Decision{Allowed: true}

// RequireAuthenticated denies anonymous sessions.
func RequireAuthenticated(session model.Session) Decision {
	if !session.Authenticated() {
		return Decision{Reason: "user did not login", Hint: HintSignIn}
	}
	return allowed
}

// RequireAnonymous denies sessions that already hold an account.
func RequireAnonymous(session model.Session) Decision {
	if session.Authenticated() {
		return Decision{Reason: "user did login", Hint: HintBack}
	}
	return allowed
}

// RequireOwnership denies principals that do not own the resource. Callers
// must have verified existence first: a missing resource is reported as not
// found, never as not authorized.
func RequireOwnership(session model.Session, ownerID uuid.UUID) Decision {
	if d := RequireAuthenticated(session); !d.Allowed {
		return d
	}
	if session.Account.ID != ownerID {
		return Decision{Reason: "no authorization", Hint: HintBack}
	}
	return allowed
}
