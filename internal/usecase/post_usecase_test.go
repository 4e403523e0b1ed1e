package usecase_test

import (
	"context"
	"testing"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/internal/usecase"
	"go-devconnector-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	bobID     = "7a1c9e2d-3b4f-4a5e-8d6c-0b1a2c3d4e5f"
	postID    = "f1e2d3c4-b5a6-4978-8a9b-0c1d2e3f4a5b"
	commentID = "a9b8c7d6-e5f4-4a3b-9c2d-1e0f9a8b7c6d"
)

func alicePost() *domain.Post {
	return &domain.Post{
		ID:     postID,
		UserID: aliceID,
		Text:   "hello",
		Name:   "Alice",
		Likes:  []domain.Like{},
		Comments: []domain.Comment{
			{ID: commentID, UserID: aliceID, Text: "first", Name: "Alice"},
		},
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Should snapshot the author's name and avatar", func(t *testing.T) {
		repo, users := new(MockPostRepo), new(MockUserRepo)
		uc := usecase.NewPostUsecase(repo, users, validation.New())

		users.On("GetByID", ctx, aliceID).Return(&domain.User{ID: aliceID, Name: "Alice", Avatar: "https://avatar/a"}, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Post")).Return(nil)

		post, err := uc.Create(ctx, aliceID, domain.TextInput{Text: " hello "})
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Text)
		assert.Equal(t, "Alice", post.Name)
		assert.Equal(t, "https://avatar/a", post.Avatar)
		assert.Empty(t, post.Likes)
		assert.Empty(t, post.Comments)
		assert.False(t, post.CreatedAt.IsZero())
	})

	t.Run("Should reject blank text", func(t *testing.T) {
		repo, users := new(MockPostRepo), new(MockUserRepo)
		uc := usecase.NewPostUsecase(repo, users, validation.New())

		_, err := uc.Create(ctx, aliceID, domain.TextInput{Text: "   "})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail when the author no longer exists", func(t *testing.T) {
		repo, users := new(MockPostRepo), new(MockUserRepo)
		uc := usecase.NewPostUsecase(repo, users, validation.New())
		users.On("GetByID", ctx, aliceID).Return(nil, nil)

		_, err := uc.Create(ctx, aliceID, domain.TextInput{Text: "hello"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid deleting someone else's post", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)

		err := uc.Delete(ctx, postID, bobID)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should delete the author's own post", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)
		repo.On("Delete", ctx, postID, aliceID).Return(true, nil)

		assert.NoError(t, uc.Delete(ctx, postID, aliceID))
	})

	t.Run("Should report not found for a malformed id", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())

		assert.ErrorIs(t, uc.Delete(ctx, "xyz", aliceID), domain.ErrPostNotFound)
	})
}

func TestLikes(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a second like", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		liked := alicePost()
		liked.Likes = []domain.Like{{UserID: bobID}}
		repo.On("GetByID", ctx, postID).Return(liked, nil)

		_, err := uc.Like(ctx, postID, bobID)
		assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
		repo.AssertNotCalled(t, "AddLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface a concurrent duplicate like from the store", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)
		repo.On("AddLike", ctx, postID, bobID).Return(domain.ErrAlreadyLiked)

		_, err := uc.Like(ctx, postID, bobID)
		assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
	})

	t.Run("Should prepend the new like", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		liked := alicePost()
		liked.Likes = []domain.Like{{UserID: aliceID}}
		repo.On("GetByID", ctx, postID).Return(liked, nil)
		repo.On("AddLike", ctx, postID, bobID).Return(nil)

		post, err := uc.Like(ctx, postID, bobID)
		require.NoError(t, err)
		assert.Equal(t, []domain.Like{{UserID: bobID}, {UserID: aliceID}}, post.Likes)
	})

	t.Run("Should reject unliking a post that was never liked", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)

		_, err := uc.Unlike(ctx, postID, bobID)
		assert.ErrorIs(t, err, domain.ErrNotLiked)
		repo.AssertNotCalled(t, "RemoveLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should remove only the caller's like", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		liked := alicePost()
		liked.Likes = []domain.Like{{UserID: bobID}, {UserID: aliceID}}
		repo.On("GetByID", ctx, postID).Return(liked, nil)
		repo.On("RemoveLike", ctx, postID, bobID).Return(true, nil)

		post, err := uc.Unlike(ctx, postID, bobID)
		require.NoError(t, err)
		assert.Equal(t, []domain.Like{{UserID: aliceID}}, post.Likes)
	})
}

func TestComments(t *testing.T) {
	ctx := context.Background()

	t.Run("Should prepend a comment with the commenter's snapshot", func(t *testing.T) {
		repo, users := new(MockPostRepo), new(MockUserRepo)
		uc := usecase.NewPostUsecase(repo, users, validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)
		users.On("GetByID", ctx, bobID).Return(&domain.User{ID: bobID, Name: "Bob", Avatar: "https://avatar/b"}, nil)
		repo.On("AddComment", ctx, postID, mock.AnythingOfType("*domain.Comment")).Return(nil)

		post, err := uc.AddComment(ctx, postID, bobID, domain.TextInput{Text: "nice"})
		require.NoError(t, err)
		require.Len(t, post.Comments, 2)
		assert.Equal(t, "Bob", post.Comments[0].Name)
		assert.Equal(t, "nice", post.Comments[0].Text)
		assert.Equal(t, commentID, post.Comments[1].ID)
	})

	t.Run("Should fail for an unknown comment", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)

		_, err := uc.RemoveComment(ctx, postID, "0f0f0f0f-0f0f-4f0f-8f0f-0f0f0f0f0f0f", aliceID)
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})

	t.Run("Should forbid removing someone else's comment", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)

		_, err := uc.RemoveComment(ctx, postID, commentID, bobID)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("Should remove the author's comment", func(t *testing.T) {
		repo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(repo, new(MockUserRepo), validation.New())
		repo.On("GetByID", ctx, postID).Return(alicePost(), nil)
		repo.On("RemoveComment", ctx, postID, commentID, aliceID).Return(true, nil)

		post, err := uc.RemoveComment(ctx, postID, commentID, aliceID)
		require.NoError(t, err)
		assert.Empty(t, post.Comments)
	})
}
