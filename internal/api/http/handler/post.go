package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/service"
)

// PostService defines post lifecycle operations.
type PostService interface {
	Create(ctx context.Context, session model.Session, params model.CreatePostParams) (model.Post, error)
	View(ctx context.Context, id uuid.UUID) (model.PostWithAuthor, error)
	List(ctx context.Context, authorID *uuid.UUID) ([]model.PostWithAuthor, error)
	EditForm(ctx context.Context, session model.Session, id uuid.UUID) (model.Post, error)
	Edit(ctx context.Context, session model.Session, id uuid.UUID, params model.UpdatePostParams) error
	Remove(ctx context.Context, session model.Session, id uuid.UUID) error
}

// Post handles the post pages.
type Post struct {
	postService PostService
	sessions    model.SessionStore
	logger      *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, sessions model.SessionStore, logger *logger.Logger) *Post {
	return &Post{
		postService: postService,
		sessions:    sessions,
		logger:      logger,
	}
}

// postID parses the :postID route parameter. An unparseable id is
// indistinguishable from a missing post.
func (h *Post) postID(c *gin.Context, session model.Session) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("postID"))
	if err != nil {
		handleError(c, h.sessions, h.logger, session, model.ErrNotFound, backURL(c))
		return uuid.Nil, false
	}
	return id, true
}

// List renders the post index, optionally filtered by author.
func (h *Post) List(c *gin.Context) {
	session := sessionFrom(c)

	var authorID *uuid.UUID
	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			handleError(c, h.sessions, h.logger, session, model.ErrNotFound, backURL(c))
			return
		}
		authorID = &id
	}

	posts, err := h.postService.List(c.Request.Context(), authorID)
	if err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	renderPage(c, h.sessions, h.logger, session, http.StatusOK, "posts.html", gin.H{"Posts": posts})
}

// View renders a single post and bumps its view counter.
func (h *Post) View(c *gin.Context) {
	session := sessionFrom(c)

	id, ok := h.postID(c, session)
	if !ok {
		return
	}

	post, err := h.postService.View(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	renderPage(c, h.sessions, h.logger, session, http.StatusOK, "post.html", gin.H{"Post": post})
}

// CreateForm renders the new-post page for signed-in accounts.
func (h *Post) CreateForm(c *gin.Context) {
	session := sessionFrom(c)
	if d := service.RequireAuthenticated(session); !d.Allowed {
		deny(c, h.sessions, h.logger, session, d)
		return
	}

	renderPage(c, h.sessions, h.logger, session, http.StatusOK, "create.html", nil)
}

// Create publishes a new post and redirects to its page.
func (h *Post) Create(c *gin.Context) {
	session := sessionFrom(c)

	saved, err := h.postService.Create(c.Request.Context(), session, model.CreatePostParams{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	})
	if err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	addFlash(c, h.sessions, h.logger, session, model.FlashSuccess, "posted")
	c.Redirect(http.StatusFound, "/posts/"+saved.ID.String())
}

// EditFormPage renders the edit page for the post's owner.
func (h *Post) EditFormPage(c *gin.Context) {
	session := sessionFrom(c)

	id, ok := h.postID(c, session)
	if !ok {
		return
	}

	post, err := h.postService.EditForm(c.Request.Context(), session, id)
	if err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	renderPage(c, h.sessions, h.logger, session, http.StatusOK, "edit.html", gin.H{"Post": post})
}

// Edit replaces the post's title and content and redirects to its page.
func (h *Post) Edit(c *gin.Context) {
	session := sessionFrom(c)

	id, ok := h.postID(c, session)
	if !ok {
		return
	}

	err := h.postService.Edit(c.Request.Context(), session, id, model.UpdatePostParams{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	})
	if err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	addFlash(c, h.sessions, h.logger, session, model.FlashSuccess, "post edited")
	c.Redirect(http.StatusFound, "/posts/"+id.String())
}

// Remove deletes the post and redirects to the index.
func (h *Post) Remove(c *gin.Context) {
	session := sessionFrom(c)

	id, ok := h.postID(c, session)
	if !ok {
		return
	}

	if err := h.postService.Remove(c.Request.Context(), session, id); err != nil {
		handleError(c, h.sessions, h.logger, session, err, backURL(c))
		return
	}

	addFlash(c, h.sessions, h.logger, session, model.FlashSuccess, "post deleted")
	c.Redirect(http.StatusFound, "/posts")
}
