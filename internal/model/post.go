package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts. The store is a dumb
// persistence layer: ownership checks happen in the service layer before any
// mutating call, and Update/Delete on a missing id are no-op successes.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (PostWithAuthor, error)
	GetRawByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context, authorID *uuid.UUID) ([]PostWithAuthor, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, title, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Post represents a published post. AuthorID is immutable and defines
// ownership for the life of the post.
type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Title     string
	Content   string
	Views     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostWithAuthor joins a post with the sanitized author projection for
// rendering. The join must never carry the password digest.
type PostWithAuthor struct {
	Post
	Author AccountSummary
}

// CreatePostParams contains user input for a new post.
type CreatePostParams struct {
	Title   string
	Content string
}

// UpdatePostParams contains user input for editing a post. Only title and
// content are replaceable.
type UpdatePostParams struct {
	Title   string
	Content string
}
