package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
)

const sessionKey = "session"

// Session resolves the browser session from the signed cookie and injects it
// into the request context. First-time visitors and visitors with a stale or
// tampered cookie get a fresh anonymous session and a new cookie.
type Session struct {
	sessions     model.SessionStore
	tokens       model.TokenManager
	cookieName   string
	cookieSecure bool
	logger       *logger.Logger
}

// NewSession creates a new Session middleware instance.
func NewSession(
	sessions model.SessionStore,
	tokens model.TokenManager,
	cookieName string,
	cookieSecure bool,
	logger *logger.Logger,
) *Session {
	return &Session{
		sessions:     sessions,
		tokens:       tokens,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// Handle resolves or creates the session for the request.
func (m *Session) Handle(c *gin.Context) {
	if cookie, err := c.Cookie(m.cookieName); err == nil {
		if sessionID, err := m.tokens.ParseSessionToken(cookie); err == nil {
			if session, err := m.sessions.Get(c.Request.Context(), sessionID); err == nil {
				c.Set(sessionKey, session)
				c.Next()
				return
			}
		}
	}

	session, err := m.sessions.Create(c.Request.Context())
	if err != nil {
		m.logger.Error("Session middleware: failed to create session", "error", err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	token, err := m.tokens.GenerateSessionToken(session.ID)
	if err != nil {
		m.logger.Error("Session middleware: failed to sign session token", "error", err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.SetCookie(m.cookieName, token, int(model.SessionDuration.Seconds()), "/", "", m.cookieSecure, true)
	c.Set(sessionKey, session)
	c.Next()
}

// SessionFrom returns the session the middleware resolved for this request.
// Handlers registered behind the middleware can rely on its presence; outside
// of it an empty anonymous session is returned.
func SessionFrom(c *gin.Context) model.Session {
	if v, ok := c.Get(sessionKey); ok {
		if session, ok := v.(model.Session); ok {
			return session
		}
	}
	return model.Session{}
}
