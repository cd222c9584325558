package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// User is the stored account row, password hash included.
type User struct {
	ID             int
	Name           string
	Email          string
	Phone          *string
	AvatarURL      *string
	HashedPassword string
	CreatedAt      time.Time
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, email, phone, hashed_password, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Phone, u.HashedPassword)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	u.ID = int(id)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT id, name, email, phone, avatar_url, hashed_password, created_at FROM users WHERE id = ?`
	return r.scanUser(ctx, query, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, name, email, phone, avatar_url, hashed_password, created_at FROM users WHERE email = ?`
	return r.scanUser(ctx, query, email)
}

func (r *UserRepo) SetAvatar(ctx context.Context, id int, url string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET avatar_url = ? WHERE id = ?`, url, id); err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*User, error) {
	u := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.AvatarURL,
		&u.HashedPassword,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
