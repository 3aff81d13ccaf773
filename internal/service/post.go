package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
)

type Post struct {
	postStore model.PostStore
	logger    *logger.Logger
}

func NewPost(postStore model.PostStore, logger *logger.Logger) *Post {
	return &Post{
		postStore: postStore,
		logger:    logger,
	}
}

// Create publishes a new post owned by the session's account.
func (s *Post) Create(ctx context.Context, session model.Session, params model.CreatePostParams) (model.Post, error) {
	if d := RequireAuthenticated(session); !d.Allowed {
		return model.Post{}, model.ErrAuthenticationRequired
	}

	title, content, err := validatePostInput(params.Title, params.Content)
	if err != nil {
		return model.Post{}, err
	}

	now := time.Now()
	post := model.Post{
		ID:        uuid.New(),
		AuthorID:  session.Account.ID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.postStore.Create(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post published", "post_id", saved.ID, "author_id", saved.AuthorID)

	return saved, nil
}

// View fetches the post and bumps its view counter. The increment is
// fire-and-forget: it runs concurrently with the read on a detached context
// and its outcome never affects the response, so the counter is eventually
// consistent with views rather than strictly per-request.
func (s *Post) View(ctx context.Context, id uuid.UUID) (model.PostWithAuthor, error) {
	go func(ctx context.Context) {
		if err := s.postStore.IncrementViews(ctx, id); err != nil {
			s.logger.Error("Post service: failed to increment views", "post_id", id, "error", err.Error())
		}
	}(context.WithoutCancel(ctx))

	post, err := s.postStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.PostWithAuthor{}, model.ErrNotFound
	}
	if err != nil {
		return model.PostWithAuthor{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// List returns all posts, newest first, optionally restricted to one author.
func (s *Post) List(ctx context.Context, authorID *uuid.UUID) ([]model.PostWithAuthor, error) {
	posts, err := s.postStore.List(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// EditForm loads the raw post for the edit form, enforcing existence before
// ownership: a missing post is never reported as not authorized.
func (s *Post) EditForm(ctx context.Context, session model.Session, id uuid.UUID) (model.Post, error) {
	if d := RequireAuthenticated(session); !d.Allowed {
		return model.Post{}, model.ErrAuthenticationRequired
	}

	post, err := s.getOwned(ctx, session, id)
	if err != nil {
		return model.Post{}, err
	}

	return post, nil
}

// Edit replaces the post's title and content after the same validation as
// Create and the same existence-then-ownership checks as EditForm.
func (s *Post) Edit(ctx context.Context, session model.Session, id uuid.UUID, params model.UpdatePostParams) error {
	if d := RequireAuthenticated(session); !d.Allowed {
		return model.ErrAuthenticationRequired
	}

	title, content, err := validatePostInput(params.Title, params.Content)
	if err != nil {
		return err
	}

	if _, err := s.getOwned(ctx, session, id); err != nil {
		return err
	}

	if err := s.postStore.Update(ctx, id, title, content); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	s.logger.Info("Post service: post edited", "post_id", id, "author_id", session.Account.ID)

	return nil
}

// Remove deletes the post after existence and ownership checks. Deletion is
// terminal: subsequent reads report absence.
func (s *Post) Remove(ctx context.Context, session model.Session, id uuid.UUID) error {
	if d := RequireAuthenticated(session); !d.Allowed {
		return model.ErrAuthenticationRequired
	}

	if _, err := s.getOwned(ctx, session, id); err != nil {
		return err
	}

	if err := s.postStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("Post service: post deleted", "post_id", id, "author_id", session.Account.ID)

	return nil
}

// getOwned fetches the raw post and verifies ownership. Existence strictly
// precedes the ownership check.
func (s *Post) getOwned(ctx context.Context, session model.Session, id uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetRawByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.ErrNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get raw post by id: %w", err)
	}

	if d := RequireOwnership(session, post.AuthorID); !d.Allowed {
		return model.Post{}, model.ErrNotAuthorized
	}

	return post, nil
}

func validatePostInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return "", "", model.NewValidationError("need title")
	}
	if content == "" {
		return "", "", model.NewValidationError("need content")
	}
	return title, content, nil
}
