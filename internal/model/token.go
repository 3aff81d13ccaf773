package model

import "github.com/google/uuid"

// TokenManager signs session ids into browser cookie values and back.
type TokenManager interface {
	GenerateSessionToken(sessionID uuid.UUID) (string, error)
	ParseSessionToken(token string) (uuid.UUID, error)
}
