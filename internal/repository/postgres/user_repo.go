package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/Postbox/internal/domain/user"
)

var _ user.Repo = (*UserRepo)(nil)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const (
	qUserInsert = `
INSERT INTO users (username, email, password_hash, roles)
VALUES ($1, $2, $3, $4)
RETURNING id, username, email, password_hash, roles, created_at, updated_at;`

	qUserByID = `
SELECT id, username, email, password_hash, roles, created_at, updated_at
FROM users
WHERE id = $1;`

	qUserByUsername = `
SELECT id, username, email, password_hash, roles, created_at, updated_at
FROM users
WHERE username = $1;`
)

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	roles := u.Roles
	if len(roles) == 0 {
		roles = []string{"user"}
	}
	err := scanUser(r.db.Pool.QueryRow(ctx, qUserInsert, u.Username, u.Email, u.Password, roles), u)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u user.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByID, id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u user.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByUsername, username), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUser(row pgx.Row, out *user.User) error {
	err := row.Scan(&out.ID, &out.Username, &out.Email, &out.Password, &out.Roles,
		&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("scan user: %w", err)
	}
	return nil
}
