package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal0/nexo/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `INSERT INTO posts (id, content, author_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, post.ID, post.Content, post.AuthorID, post.CreatedAt)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := `
		SELECT p.id, p.content, p.author_id, p.created_at, u.username, u.photo_url
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`
	var post domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Content, &post.AuthorID, &post.CreatedAt,
		&post.AuthorUsername, &post.AuthorPhotoURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	query := `
		SELECT p.id, p.content, p.author_id, p.created_at, u.username, u.photo_url
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC`
	return r.queryPosts(ctx, query, authorID)
}

func (r *PostRepo) ListFeed(ctx context.Context, before *uuid.UUID, limit int) ([]domain.Post, error) {
	var query string
	var args []any

	if before != nil {
		// Cursor pagination keyed on the created_at of the "before" post
		query = fmt.Sprintf(`
			SELECT p.id, p.content, p.author_id, p.created_at, u.username, u.photo_url
			FROM posts p
			JOIN users u ON p.author_id = u.id
			WHERE p.created_at < (SELECT created_at FROM posts WHERE id = $1)
			ORDER BY p.created_at DESC
			LIMIT %d`, limit)
		args = []any{*before}
	} else {
		query = fmt.Sprintf(`
			SELECT p.id, p.content, p.author_id, p.created_at, u.username, u.photo_url
			FROM posts p
			JOIN users u ON p.author_id = u.id
			ORDER BY p.created_at DESC
			LIMIT %d`, limit)
	}

	return r.queryPosts(ctx, query, args...)
}

func (r *PostRepo) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.Content, &post.AuthorID, &post.CreatedAt,
			&post.AuthorUsername, &post.AuthorPhotoURL,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
