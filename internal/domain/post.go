package domain

import (
	"context"
	"time"
)

type Like struct {
	UserID string `json:"user"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post keeps the author's name and avatar as they were when it was written.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// LikedBy reports whether userID already likes the post.
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

type TextInput struct {
	Text string `json:"text" validate:"notblank"`
}

// PostRepository returns (nil, nil) from getters when no row matches.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	List(ctx context.Context) ([]*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Delete(ctx context.Context, id, authorID string) (bool, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	AddComment(ctx context.Context, postID string, comment *Comment) error
	RemoveComment(ctx context.Context, postID, commentID, authorID string) (bool, error)
}

type PostUsecase interface {
	Create(ctx context.Context, authorID string, input TextInput) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Delete(ctx context.Context, id, callerID string) error
	Like(ctx context.Context, id, callerID string) (*Post, error)
	Unlike(ctx context.Context, id, callerID string) (*Post, error)
	AddComment(ctx context.Context, id, authorID string, input TextInput) (*Post, error)
	RemoveComment(ctx context.Context, id, commentID, callerID string) (*Post, error)
}
