package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `INSERT INTO posts (id, user_id, text, name, avatar, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, post.ID, post.UserID, post.Text, post.Name, post.Avatar, post.CreatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, text, name, avatar, created_at FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p := &domain.Post{Likes: []domain.Like{}, Comments: []domain.Comment{}}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := r.loadReactions(ctx, posts); err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	p := &domain.Post{Likes: []domain.Like{}, Comments: []domain.Comment{}}
	err := r.db.QueryRow(ctx, `SELECT id, user_id, text, name, avatar, created_at FROM posts WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}

	if err := r.loadReactions(ctx, []*domain.Post{p}); err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

// loadReactions attaches likes and comments, most recent first.
func (r *postRepository) loadReactions(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Post, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	likeRows, err := r.db.Query(ctx, `
		SELECT post_id, user_id FROM post_likes
		WHERE post_id = ANY($1::uuid[])
		ORDER BY seq DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch likes: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var postID string
		var like domain.Like
		if err := likeRows.Scan(&postID, &like.UserID); err != nil {
			return err
		}
		if p, ok := byID[postID]; ok {
			p.Likes = append(p.Likes, like)
		}
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := r.db.Query(ctx, `
		SELECT id, post_id, user_id, text, name, avatar, created_at FROM post_comments
		WHERE post_id = ANY($1::uuid[])
		ORDER BY seq DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var postID string
		var c domain.Comment
		if err := commentRows.Scan(&c.ID, &postID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt); err != nil {
			return err
		}
		if p, ok := byID[postID]; ok {
			p.Comments = append(p.Comments, c)
		}
	}
	return commentRows.Err()
}

// Delete removes the post only when authorID wrote it. Likes and comments go with it.
func (r *postRepository) Delete(ctx context.Context, id, authorID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, authorID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return domain.ErrAlreadyLiked
		case pgForeignKeyViolation:
			return domain.ErrPostNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postRepository) AddComment(ctx context.Context, postID string, comment *domain.Comment) error {
	query := `INSERT INTO post_comments (id, post_id, user_id, text, name, avatar, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		comment.ID, postID, comment.UserID, comment.Text, comment.Name, comment.Avatar, comment.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrPostNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID, authorID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM post_comments WHERE id = $1 AND post_id = $2 AND user_id = $3`,
		commentID, postID, authorID,
	)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return tag.RowsAffected() > 0, nil
}
