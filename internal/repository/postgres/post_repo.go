package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/Postbox/internal/domain/post"
)

var _ post.Repo = (*PostRepo)(nil)

type PostRepo struct {
	db *DB
}

func NewPostRepo(db *DB) *PostRepo { return &PostRepo{db: db} }

const (
	qPostList = `
SELECT id, user_id, title, body, created_at
FROM posts
ORDER BY id;`

	qPostByID = `
SELECT id, user_id, title, body, created_at
FROM posts
WHERE id = $1;`

	qPostInsert = `
INSERT INTO posts (user_id, title, body)
VALUES ($1, $2, $3)
RETURNING id, user_id, title, body, created_at;`

	qPostDelete = `
DELETE FROM posts
WHERE id = $1;`
)

func (r *PostRepo) List(ctx context.Context) ([]post.Post, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qPostList)
	if err != nil {
		return nil, fmt.Errorf("post list: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("post rows: %w", err)
	}
	return posts, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var p post.Post
	err := r.db.Pool.QueryRow(ctx, qPostByID, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("post by id: %w", err)
	}
	return &p, nil
}

func (r *PostRepo) Create(ctx context.Context, p *post.Post) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.Pool.QueryRow(ctx, qPostInsert, p.UserID, p.Title, p.Body).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("post insert: %w", err)
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qPostDelete, id)
	if err != nil {
		return fmt.Errorf("post delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
