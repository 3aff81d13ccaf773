package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell/inkwell/internal/model"
)

var _ model.SessionStore = (*Manager)(nil)

// Manager is an in-memory session store. Sessions are transient by contract,
// so a process restart signing everyone out is acceptable. Expiry is checked
// on read; there is no background sweeper.
type Manager struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[uuid.UUID]*entry
}

type entry struct {
	session model.Session
	flashes []model.Flash
}

// NewManager creates a Manager with the given session TTL. A non-positive ttl
// falls back to model.SessionDuration.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = model.SessionDuration
	}
	return &Manager{
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*entry),
	}
}

// Create starts a new anonymous session.
func (m *Manager) Create(_ context.Context) (model.Session, error) {
	now := time.Now()
	session := model.Session{
		ID:        uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = &entry{session: session}

	return session, nil
}

// Get returns the session by id. Expired sessions are dropped and reported as
// absent.
func (m *Manager) Get(_ context.Context, id uuid.UUID) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}
	if time.Now().After(e.session.ExpiresAt) {
		delete(m.sessions, id)
		return model.Session{}, model.ErrNotFound
	}

	return copySession(e.session), nil
}

// SetAccount stores the sanitized account snapshot into the session,
// overwriting any prior snapshot.
func (m *Manager) SetAccount(_ context.Context, id uuid.UUID, account model.AccountSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.ErrNotFound
	}
	snapshot := account
	e.session.Account = &snapshot

	return nil
}

// ClearAccount removes the account snapshot, turning the session anonymous.
func (m *Manager) ClearAccount(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.ErrNotFound
	}
	e.session.Account = nil

	return nil
}

// Destroy removes the session entirely.
func (m *Manager) Destroy(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// AddFlash queues a one-shot message for the next rendered page.
func (m *Manager) AddFlash(_ context.Context, id uuid.UUID, flash model.Flash) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.ErrNotFound
	}
	e.flashes = append(e.flashes, flash)

	return nil
}

// ConsumeFlashes returns queued messages and clears the queue.
func (m *Manager) ConsumeFlashes(_ context.Context, id uuid.UUID) ([]model.Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	flashes := e.flashes
	e.flashes = nil

	return flashes, nil
}

func copySession(s model.Session) model.Session {
	out := s
	if s.Account != nil {
		snapshot := *s.Account
		out.Account = &snapshot
	}
	return out
}
