package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tuninggarage/internal/domain"
)

// Post is a feed row with viewer-relative like state.
type Post struct {
	ID            int
	UserID        int
	AuthorName    string
	AuthorAvatar  *string
	Title         *string
	Body          *string
	ImageURL      *string
	PublishedAt   time.Time
	LikeCount     int
	CommentCount  int
	LikedByViewer bool
}

type Comment struct {
	ID           int
	UserID       int
	AuthorName   string
	AuthorAvatar *string
	Body         string
	PostedAt     time.Time
}

type SocialRepo struct {
	db *sql.DB
}

func NewSocialRepo(db *sql.DB) *SocialRepo {
	return &SocialRepo{db: db}
}

const postColumns = `
	p.id, p.user_id, u.name, u.avatar_url, p.title, p.body, p.image_url, p.published_at,
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id),
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = ?)
`

// Posts lists the feed newest first, with counts and the viewer's like flag
// computed in the query.
func (r *SocialRepo) Posts(ctx context.Context, viewerID int) ([]Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.user_id
		ORDER BY p.published_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.AuthorName, &p.AuthorAvatar, &p.Title, &p.Body,
			&p.ImageURL, &p.PublishedAt, &p.LikeCount, &p.CommentCount, &p.LikedByViewer,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *SocialRepo) Post(ctx context.Context, viewerID, postID int) (*Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = ?`
	var p Post
	err := r.db.QueryRowContext(ctx, query, viewerID, postID).Scan(
		&p.ID, &p.UserID, &p.AuthorName, &p.AuthorAvatar, &p.Title, &p.Body,
		&p.ImageURL, &p.PublishedAt, &p.LikeCount, &p.CommentCount, &p.LikedByViewer,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (r *SocialRepo) CreatePost(ctx context.Context, userID int, title, body, imageURL *string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, body, image_url) VALUES (?, ?, ?, ?)`,
		userID, title, body, imageURL)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post id: %w", err)
	}
	return int(id), nil
}

// ToggleLike flips the user's like and reports the new state.
func (r *SocialRepo) ToggleLike(ctx context.Context, userID, postID int) (liked bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle like: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = ?)`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return false, domain.ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_likes (user_id, post_id) VALUES (?, ?)`, userID, postID); err != nil {
			return false, fmt.Errorf("insert like: %w", err)
		}
		liked = true
	}
	return liked, tx.Commit()
}

// Comments lists a post's comments oldest first.
func (r *SocialRepo) Comments(ctx context.Context, postID int) ([]Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, u.name, u.avatar_url, c.body, c.posted_at
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ? ORDER BY c.posted_at, c.id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.AuthorName, &c.AuthorAvatar, &c.Body, &c.PostedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *SocialRepo) AddComment(ctx context.Context, userID, postID int, body string) (int, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = ?)`, postID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, user_id, body) VALUES (?, ?, ?)`, postID, userID, body)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment id: %w", err)
	}
	return int(id), nil
}

func (r *SocialRepo) Comment(ctx context.Context, commentID int) (*Comment, error) {
	var c Comment
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.user_id, u.name, u.avatar_url, c.body, c.posted_at
		FROM comments c JOIN users u ON u.id = c.user_id WHERE c.id = ?
	`, commentID).Scan(&c.ID, &c.UserID, &c.AuthorName, &c.AuthorAvatar, &c.Body, &c.PostedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}
