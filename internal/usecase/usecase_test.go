package usecase_test

import (
	"context"
	"encoding/json"

	"go-devconnector-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error) {
	args := m.Called(ctx, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) DeleteWithUser(ctx context.Context, userID string, cascadePosts bool) error {
	return m.Called(ctx, userID, cascadePosts).Error(0)
}
func (m *MockProfileRepo) AddExperience(ctx context.Context, profileID string, exp *domain.Experience) error {
	return m.Called(ctx, profileID, exp).Error(0)
}
func (m *MockProfileRepo) RemoveExperience(ctx context.Context, profileID, experienceID string) (bool, error) {
	args := m.Called(ctx, profileID, experienceID)
	return args.Bool(0), args.Error(1)
}
func (m *MockProfileRepo) AddEducation(ctx context.Context, profileID string, edu *domain.Education) error {
	return m.Called(ctx, profileID, edu).Error(0)
}
func (m *MockProfileRepo) RemoveEducation(ctx context.Context, profileID, educationID string) (bool, error) {
	args := m.Called(ctx, profileID, educationID)
	return args.Bool(0), args.Error(1)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}
func (m *MockPostRepo) List(ctx context.Context) ([]*domain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}
func (m *MockPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostRepo) Delete(ctx context.Context, id, authorID string) (bool, error) {
	args := m.Called(ctx, id, authorID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPostRepo) AddLike(ctx context.Context, postID, userID string) error {
	return m.Called(ctx, postID, userID).Error(0)
}
func (m *MockPostRepo) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPostRepo) AddComment(ctx context.Context, postID string, comment *domain.Comment) error {
	return m.Called(ctx, postID, comment).Error(0)
}
func (m *MockPostRepo) RemoveComment(ctx context.Context, postID, commentID, authorID string) (bool, error) {
	args := m.Called(ctx, postID, commentID, authorID)
	return args.Bool(0), args.Error(1)
}

type MockGithubClient struct {
	mock.Mock
}

func (m *MockGithubClient) LatestRepos(ctx context.Context, username string) (json.RawMessage, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
