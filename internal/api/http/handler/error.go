package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/service"
)

// backURL is where "redirect back" lands. Browsers send the Referer on form
// posts; without one the post index is the safe fallback.
func backURL(c *gin.Context) string {
	if ref := c.Request.Referer(); ref != "" {
		return ref
	}
	return "/posts"
}

func addFlash(c *gin.Context, sessions model.SessionStore, log *logger.Logger, session model.Session, severity model.FlashSeverity, message string) {
	if err := sessions.AddFlash(c.Request.Context(), session.ID, model.Flash{Severity: severity, Message: message}); err != nil {
		log.Error("Handler: failed to add flash",
			"session_id", session.ID,
			"error", err.Error())
	}
}

// renderPage renders the template with the pending flashes and the session's
// account snapshot merged in. Flashes are popped here: they show exactly once.
func renderPage(c *gin.Context, sessions model.SessionStore, log *logger.Logger, session model.Session, status int, name string, data gin.H) {
	flashes, err := sessions.ConsumeFlashes(c.Request.Context(), session.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		log.Error("Handler: failed to consume flashes",
			"session_id", session.ID,
			"error", err.Error())
	}

	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = flashes
	data["Account"] = session.Account

	c.HTML(status, name, data)
}

// deny turns a gate decision into the flash-and-redirect convention.
func deny(c *gin.Context, sessions model.SessionStore, log *logger.Logger, session model.Session, d service.Decision) {
	addFlash(c, sessions, log, session, model.FlashError, d.Reason)

	switch d.Hint {
	case service.HintSignIn:
		c.Redirect(http.StatusFound, "/signin")
	default:
		c.Redirect(http.StatusFound, backURL(c))
	}
}

// handleError maps service failures onto the page conventions: correctable
// input faults become a flash plus a redirect to redirectTo, absence and
// ownership faults become error pages, anything else is a generic fault.
func handleError(c *gin.Context, sessions model.SessionStore, log *logger.Logger, session model.Session, err error, redirectTo string) {
	var ve *model.ValidationError

	switch {
	case errors.As(err, &ve):
		addFlash(c, sessions, log, session, model.FlashError, ve.Message)
		c.Redirect(http.StatusFound, redirectTo)
	case errors.Is(err, model.ErrDuplicateName):
		addFlash(c, sessions, log, session, model.FlashError, "User account already exists")
		c.Redirect(http.StatusFound, redirectTo)
	case errors.Is(err, model.ErrAuthenticationRequired):
		addFlash(c, sessions, log, session, model.FlashError, "user did not login")
		c.Redirect(http.StatusFound, "/signin")
	case errors.Is(err, model.ErrAlreadyAuthenticated):
		addFlash(c, sessions, log, session, model.FlashError, "user did login")
		c.Redirect(http.StatusFound, backURL(c))
	case errors.Is(err, model.ErrNotFound):
		renderPage(c, sessions, log, session, http.StatusNotFound, "error.html", gin.H{"Message": "Cannot find the post"})
	case errors.Is(err, model.ErrNotAuthorized):
		renderPage(c, sessions, log, session, http.StatusForbidden, "error.html", gin.H{"Message": "No authorization"})
	default:
		log.Error("Handler: request failed",
			"path", c.Request.URL.Path,
			"error", err.Error())
		renderPage(c, sessions, log, session, http.StatusInternalServerError, "error.html", gin.H{"Message": "Something went wrong"})
	}
}
