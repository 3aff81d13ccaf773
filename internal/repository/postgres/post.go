package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkwell/inkwell/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, author_id, title, content, pv, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, 0, $5, $6)
			  RETURNING id, author_id, title, content, pv, created_at, updated_at`

	var saved model.Post
	err := r.db.QueryRow(ctx, query,
		post.ID, post.AuthorID, post.Title, post.Content,
		post.CreatedAt, post.UpdatedAt,
	).Scan(
		&saved.ID, &saved.AuthorID, &saved.Title, &saved.Content, &saved.Views,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return saved, nil
}

// GetByID returns the post joined with the sanitized author projection. The
// join selects no credential columns.
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.PostWithAuthor, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.content, p.pv, p.created_at, p.updated_at,
		       a.id, a.name, a.bio, a.avatar_ref
		FROM posts p
		JOIN accounts a ON a.id = p.author_id
		WHERE p.id = $1`

	var post model.PostWithAuthor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.Views,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Name, &post.Author.Bio, &post.Author.AvatarRef,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PostWithAuthor{}, model.ErrNotFound
		}
		return model.PostWithAuthor{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// GetRawByID returns the bare post row, enough for ownership checks without
// the render-oriented join.
func (r *PostRepository) GetRawByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT id, author_id, title, content, pv, created_at, updated_at
			  FROM posts WHERE id = $1`

	var post model.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.Views,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get raw post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) List(ctx context.Context, authorID *uuid.UUID) ([]model.PostWithAuthor, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.content, p.pv, p.created_at, p.updated_at,
		       a.id, a.name, a.bio, a.avatar_ref
		FROM posts p
		JOIN accounts a ON a.id = p.author_id
		WHERE $1::uuid IS NULL OR p.author_id = $1
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.PostWithAuthor
	for rows.Next() {
		var post model.PostWithAuthor
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.Views,
			&post.CreatedAt, &post.UpdatedAt,
			&post.Author.ID, &post.Author.Name, &post.Author.Bio, &post.Author.AvatarRef,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post rows: %w", err)
	}

	return posts, nil
}

// IncrementViews bumps the view counter in a single atomic statement, so
// concurrent readers never lose updates.
func (r *PostRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET pv = pv + 1 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment post views: %w", err)
	}

	return nil
}

// Update replaces title and content only. A missing id is a no-op success;
// the service validates existence right before calling.
func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, title, content string) error {
	query := `UPDATE posts SET title = $2, content = $3, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, title, content); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
