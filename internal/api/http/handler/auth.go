package handler

import (
	"context"
	"io"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/service"
)

// AuthService defines registration, login and avatar operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.AccountSummary, error)
	Login(ctx context.Context, params service.LoginParams) (model.AccountSummary, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Avatar(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Auth handles the sign-up, sign-in and sign-out pages.
type Auth struct {
	authService AuthService
	sessions    model.SessionStore
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, sessions model.SessionStore, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// SignupForm renders the registration page for anonymous visitors.
func (h *Auth) SignupForm(c *gin.Context) {
	session := sessionFrom(c)
	if d := service.RequireAnonymous(session); !d.Allowed {
		deny(c, h.sessions, h.logger, session, d)
		return
	}

	renderPage(c, h.sessions, h.logger, session, http.StatusOK, "signup.html", nil)
}

// Signup registers a new account from the multipart form and signs it in.
func (h *Auth) Signup(c *gin.Context) {
	session := sessionFrom(c)
	if d := service.RequireAnonymous(session); !d.Allowed {
		deny(c, h.sessions, h.logger, session, d)
		return
	}

	params := service.RegisterParams{
		SessionID:  session.ID,
		Name:       c.PostForm("name"),
		Bio:        c.PostForm("bio"),
		Password:   c.PostForm("password"),
		Repassword: c.PostForm("repassword"),
	}

	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			h.logger.Error("Auth handler: failed to open avatar upload", "error", err.Error())
			handleError(c, h.sessions, h.logger, session, err, "/signup")
			return
		}
		defer f.Close()

		params.Avatar = service.AvatarUpload{
			Filename:    path.Base(file.Filename),
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
			Reader:      f,
		}
	}

	if _, err := h.authService.Register(c.Request.Context(), params); err != nil {
		h.logger.Debug("Auth handler: registration rejected",
			"name", params.Name,
			"error", err.Error())
		handleError(c, h.sessions, h.logger, session, err, "/signup")
		return
	}

	h.logger.Info("Auth handler: registration completed", "name", params.Name)

	addFlash(c, h.sessions, h.logger, session, model.FlashSuccess, "Thanks for sign up.")
	c.Redirect(http.StatusFound, "/posts")
}

// SigninForm renders the login page for anonymous visitors.
func (h *Auth) SigninForm(c *gin.Context) {
	session := sessionFrom(c)
	if d := service.RequireAnonymous(session); !d.Allowed {
		deny(c, h.sessions, h.logger, session, d)
		return
	}

	renderPage(c, h.sessions, h.logger, session, http.StatusOK, "signin.html", nil)
}

// Signin verifies credentials and establishes the session.
func (h *Auth) Signin(c *gin.Context) {
	session := sessionFrom(c)
	if d := service.RequireAnonymous(session); !d.Allowed {
		deny(c, h.sessions, h.logger, session, d)
		return
	}

	params := service.LoginParams{
		SessionID: session.ID,
		Name:      c.PostForm("name"),
		Password:  c.PostForm("password"),
	}

	if _, err := h.authService.Login(c.Request.Context(), params); err != nil {
		h.logger.Debug("Auth handler: login rejected",
			"name", params.Name,
			"error", err.Error())
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	h.logger.Info("Auth handler: login completed", "name", params.Name)

	addFlash(c, h.sessions, h.logger, session, model.FlashSuccess, "You are logged in")
	c.Redirect(http.StatusFound, "/posts")
}

// Signout drops the account from the session.
func (h *Auth) Signout(c *gin.Context) {
	session := sessionFrom(c)
	if d := service.RequireAuthenticated(session); !d.Allowed {
		deny(c, h.sessions, h.logger, session, d)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), session.ID); err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	h.logger.Info("Auth handler: logout completed", "account", session.Account.Name)

	addFlash(c, h.sessions, h.logger, session, model.FlashSuccess, "You are logged out")
	c.Redirect(http.StatusFound, "/posts")
}

// Avatar streams avatar bytes from object storage.
func (h *Auth) Avatar(c *gin.Context) {
	ref := path.Base(c.Param("ref"))

	reader, err := h.authService.Avatar(c.Request.Context(), ref)
	if err != nil {
		h.logger.Error("Auth handler: failed to fetch avatar",
			"ref", ref,
			"error", err.Error())
		c.Status(http.StatusNotFound)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", reader, nil)
}
