package v1_test

import (
	"context"
	"encoding/json"

	"go-devconnector-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Usecases
type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Register(ctx context.Context, input domain.RegisterInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
func (m *MockAuthUC) Authenticate(ctx context.Context, input domain.LoginInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthUC) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUC) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockAuthUC) VerifyToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type MockProfileUC struct {
	mock.Mock
}

func (m *MockProfileUC) profile(args mock.Arguments) (*domain.Profile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileUC) GetOwn(ctx context.Context, callerID string) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, callerID))
}
func (m *MockProfileUC) Upsert(ctx context.Context, callerID string, input domain.ProfileInput) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, callerID, input))
}
func (m *MockProfileUC) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Profile), args.Error(1)
}
func (m *MockProfileUC) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, userID))
}
func (m *MockProfileUC) DeleteOwn(ctx context.Context, callerID string) error {
	return m.Called(ctx, callerID).Error(0)
}
func (m *MockProfileUC) AddExperience(ctx context.Context, callerID string, input domain.ExperienceInput) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, callerID, input))
}
func (m *MockProfileUC) RemoveExperience(ctx context.Context, callerID, experienceID string) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, callerID, experienceID))
}
func (m *MockProfileUC) AddEducation(ctx context.Context, callerID string, input domain.EducationInput) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, callerID, input))
}
func (m *MockProfileUC) RemoveEducation(ctx context.Context, callerID, educationID string) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, callerID, educationID))
}
func (m *MockProfileUC) GithubRepos(ctx context.Context, username string) (json.RawMessage, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type MockPostUC struct {
	mock.Mock
}

func (m *MockPostUC) post(args mock.Arguments) (*domain.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostUC) Create(ctx context.Context, authorID string, input domain.TextInput) (*domain.Post, error) {
	return m.post(m.Called(ctx, authorID, input))
}
func (m *MockPostUC) List(ctx context.Context) ([]*domain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}
func (m *MockPostUC) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return m.post(m.Called(ctx, id))
}
func (m *MockPostUC) Delete(ctx context.Context, id, callerID string) error {
	return m.Called(ctx, id, callerID).Error(0)
}
func (m *MockPostUC) Like(ctx context.Context, id, callerID string) (*domain.Post, error) {
	return m.post(m.Called(ctx, id, callerID))
}
func (m *MockPostUC) Unlike(ctx context.Context, id, callerID string) (*domain.Post, error) {
	return m.post(m.Called(ctx, id, callerID))
}
func (m *MockPostUC) AddComment(ctx context.Context, id, authorID string, input domain.TextInput) (*domain.Post, error) {
	return m.post(m.Called(ctx, id, authorID, input))
}
func (m *MockPostUC) RemoveComment(ctx context.Context, id, commentID, callerID string) (*domain.Post, error) {
	return m.post(m.Called(ctx, id, commentID, callerID))
}

type stubHealth struct {
	status  map[string]string
	healthy bool
}

func (s stubHealth) Check(context.Context) (map[string]string, bool) {
	return s.status, s.healthy
}
