package usecase

import (
	"context"
	"strings"
	"time"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type postUsecase struct {
	repo     domain.PostRepository
	userRepo domain.UserRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewPostUsecase(repo domain.PostRepository, userRepo domain.UserRepository, validate *validator.Validate) domain.PostUsecase {
	return &postUsecase{
		repo:     repo,
		userRepo: userRepo,
		validate: validate,
		now:      time.Now,
	}
}

func (u *postUsecase) Create(ctx context.Context, authorID string, input domain.TextInput) (*domain.Post, error) {
	if err := validation.Struct(u.validate, input); err != nil {
		return nil, err
	}

	author, err := u.author(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Text:      strings.TrimSpace(input.Text),
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: u.now().UTC(),
	}
	if err := u.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *postUsecase) List(ctx context.Context) ([]*domain.Post, error) {
	return u.repo.List(ctx)
}

func (u *postUsecase) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPostNotFound
	}
	post, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (u *postUsecase) Delete(ctx context.Context, id, callerID string) error {
	post, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return domain.ErrNotAuthorized
	}

	deleted, err := u.repo.Delete(ctx, id, callerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPostNotFound
	}
	return nil
}

func (u *postUsecase) Like(ctx context.Context, id, callerID string) (*domain.Post, error) {
	post, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(callerID) {
		return nil, domain.ErrAlreadyLiked
	}

	if err := u.repo.AddLike(ctx, id, callerID); err != nil {
		return nil, err
	}

	post.Likes = append([]domain.Like{{UserID: callerID}}, post.Likes...)
	return post, nil
}

func (u *postUsecase) Unlike(ctx context.Context, id, callerID string) (*domain.Post, error) {
	post, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.LikedBy(callerID) {
		return nil, domain.ErrNotLiked
	}

	removed, err := u.repo.RemoveLike(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.ErrNotLiked
	}

	likes := make([]domain.Like, 0, len(post.Likes))
	for _, like := range post.Likes {
		if like.UserID != callerID {
			likes = append(likes, like)
		}
	}
	post.Likes = likes
	return post, nil
}

func (u *postUsecase) AddComment(ctx context.Context, id, authorID string, input domain.TextInput) (*domain.Post, error) {
	if err := validation.Struct(u.validate, input); err != nil {
		return nil, err
	}

	post, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := u.author(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Text:      strings.TrimSpace(input.Text),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: u.now().UTC(),
	}
	if err := u.repo.AddComment(ctx, id, comment); err != nil {
		return nil, err
	}

	post.Comments = append([]domain.Comment{*comment}, post.Comments...)
	return post, nil
}

func (u *postUsecase) RemoveComment(ctx context.Context, id, commentID, callerID string) (*domain.Post, error) {
	post, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.UserID != callerID {
		return nil, domain.ErrNotAuthorized
	}

	removed, err := u.repo.RemoveComment(ctx, id, commentID, callerID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.ErrCommentNotFound
	}

	comments := make([]domain.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	post.Comments = comments
	return post, nil
}

// author loads the name and avatar snapshot stored on posts and comments.
func (u *postUsecase) author(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
