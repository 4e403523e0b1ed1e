package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-devconnector-backend/config"
	v1 "go-devconnector-backend/internal/delivery/http/v1"
	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/apperror"
	"go-devconnector-backend/pkg/security"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "7b4c2d1e-9f3a-4e8b-8c6d-5a1f2e3d4c5b"
	bobID   = "1d2c3b4a-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	postID  = "c0ffee00-1111-4222-8333-444455556666"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	router  *gin.Engine
	auth    *MockAuthUC
	profile *MockProfileUC
	post    *MockPostUC
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                   "test",
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		RateLimitLoginThreshold:  1000,
	}
}

func newTestServer(t *testing.T, tracker *security.LoginTracker, health stubHealth) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{auth: new(MockAuthUC), profile: new(MockProfileUC), post: new(MockPostUC)}
	ts.auth.On("VerifyToken", "alice-token").Return(aliceID, nil).Maybe()
	ts.auth.On("VerifyToken", "bob-token").Return(bobID, nil).Maybe()
	ts.auth.On("VerifyToken", "forged").Return("", domain.ErrInvalidToken).Maybe()

	ts.router = v1.NewRouter(v1.RouterDeps{
		AuthUC:       ts.auth,
		ProfileUC:    ts.profile,
		PostUC:       ts.post,
		HealthUC:     health,
		LoginTracker: tracker,
		SecurityLog:  security.Nop(),
		Config:       testConfig(),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{})
		input := domain.RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1"}
		ts.auth.On("Register", mock.Anything, input).Return("alice-token", nil)

		w, env := ts.do(t, http.MethodPost, "/api/users", "", input)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.JSONEq(t, `{"token":"alice-token"}`, string(env.Data))
		assert.NotEmpty(t, env.RequestID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{})
		ts.auth.On("Register", mock.Anything, mock.Anything).Return("", domain.ErrDuplicateEmail)

		w, env := ts.do(t, http.MethodPost, "/api/users", "", domain.RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "User already exists", env.Message)
	})

	t.Run("ValidationDetails", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{})
		ts.auth.On("Register", mock.Anything, mock.Anything).Return("", apperror.Validation([]apperror.FieldViolation{
			{Field: "name", Message: "name is required"},
			{Field: "password", Message: "password must be at least 6 characters"},
		}))

		w, env := ts.do(t, http.MethodPost, "/api/users", "", domain.RegisterInput{Email: "a@x.com", Password: "abc"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var violations []apperror.FieldViolation
		require.NoError(t, json.Unmarshal(env.Error, &violations))
		require.Len(t, violations, 2)
		assert.Equal(t, "name", violations[0].Field)
		assert.Equal(t, "password", violations[1].Field)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{})

		w, env := ts.do(t, http.MethodPost, "/api/users", "", "{not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", env.Message)
		ts.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{})
		input := domain.LoginInput{Email: "a@x.com", Password: "secret1"}
		ts.auth.On("Authenticate", mock.Anything, input).Return(&domain.Session{Token: "alice-token", UserID: aliceID}, nil)

		w, env := ts.do(t, http.MethodPost, "/api/auth", "", input)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"alice-token"}`, string(env.Data))
		ts.auth.AssertNotCalled(t, "VerifyToken", "alice-token")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{})
		ts.auth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

		w, env := ts.do(t, http.MethodPost, "/api/auth", "", domain.LoginInput{Email: "a@x.com", Password: "nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", env.Message)
	})

	t.Run("BlockedAfterRepeatedFailures", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		tracker := security.NewLoginTracker(client, security.LoginTrackerConfig{
			MaxAttempts:   2,
			AttemptWindow: time.Minute,
			BlockDuration: time.Minute,
		}, security.Nop())

		ts := newTestServer(t, tracker, stubHealth{})
		ts.auth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)
		input := domain.LoginInput{Email: "a@x.com", Password: "nope"}

		for i := 0; i < 2; i++ {
			w, _ := ts.do(t, http.MethodPost, "/api/auth", "", input)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}

		w, env := ts.do(t, http.MethodPost, "/api/auth", "", input)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, domain.ErrLoginBlocked.Message, env.Message)
		ts.auth.AssertNumberOfCalls(t, "Authenticate", 2)
	})
}

func TestAccessGuard(t *testing.T) {
	ts := newTestServer(t, nil, stubHealth{})

	t.Run("MissingToken", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/auth", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No token, authorization denied", env.Message)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/auth", "forged", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", env.Message)
	})

	t.Run("CurrentUser", func(t *testing.T) {
		ts.auth.On("GetCurrentUser", mock.Anything, aliceID).
			Return(&domain.User{ID: aliceID, Name: "Alice", Email: "a@x.com", PasswordHash: "hash"}, nil)

		w, env := ts.do(t, http.MethodGet, "/api/auth", "alice-token", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"name":"Alice"`)
		assert.NotContains(t, string(env.Data), "hash")
	})
}

func TestProfileRoutes(t *testing.T) {
	ts := newTestServer(t, nil, stubHealth{})
	profile := &domain.Profile{ID: "p1", User: domain.ProfileOwner{ID: aliceID, Name: "Alice"}, Status: "Developer", Skills: []string{"go", "rust"}}

	t.Run("ListIsPublic", func(t *testing.T) {
		ts.profile.On("ListAll", mock.Anything).Return([]*domain.Profile{profile}, nil).Once()

		w, _ := ts.do(t, http.MethodGet, "/api/profile", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("OwnRequiresToken", func(t *testing.T) {
		w, _ := ts.do(t, http.MethodGet, "/api/profile/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("OwnNotFound", func(t *testing.T) {
		ts.profile.On("GetOwn", mock.Anything, bobID).Return(nil, domain.ErrProfileNotFound).Once()

		w, env := ts.do(t, http.MethodGet, "/api/profile/me", "bob-token", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "There is no profile for this user", env.Message)
	})

	t.Run("Upsert", func(t *testing.T) {
		input := domain.ProfileInput{Status: "Developer", Skills: "go, rust"}
		ts.profile.On("Upsert", mock.Anything, aliceID, input).Return(profile, nil).Once()

		w, env := ts.do(t, http.MethodPost, "/api/profile", "alice-token", input)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"skills":["go","rust"]`)
	})

	t.Run("AddExperienceValidation", func(t *testing.T) {
		ts.profile.On("AddExperience", mock.Anything, aliceID, mock.Anything).
			Return(nil, apperror.Validation([]apperror.FieldViolation{{Field: "from", Message: "from is required"}})).Once()

		w, env := ts.do(t, http.MethodPut, "/api/profile/experience", "alice-token", domain.ExperienceInput{Title: "Dev", Company: "Acme"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, string(env.Error), `"field":"from"`)
	})

	t.Run("RemoveUnknownEducation", func(t *testing.T) {
		ts.profile.On("RemoveEducation", mock.Anything, aliceID, "missing").Return(nil, domain.ErrEducationNotFound).Once()

		w, _ := ts.do(t, http.MethodDelete, "/api/profile/education/missing", "alice-token", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteOwn", func(t *testing.T) {
		ts.profile.On("DeleteOwn", mock.Anything, aliceID).Return(nil).Once()

		w, env := ts.do(t, http.MethodDelete, "/api/profile", "alice-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "User deleted", env.Message)
	})

	t.Run("GithubPassThrough", func(t *testing.T) {
		ts.profile.On("GithubRepos", mock.Anything, "octocat").Return(json.RawMessage(`[{"name":"hello-world"}]`), nil).Once()

		w, env := ts.do(t, http.MethodGet, "/api/profile/github/octocat", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"name":"hello-world"}]`, string(env.Data))
	})
}

func TestPostRoutes(t *testing.T) {
	ts := newTestServer(t, nil, stubHealth{})
	post := &domain.Post{ID: postID, UserID: aliceID, Text: "hello", Likes: []domain.Like{}, Comments: []domain.Comment{}}

	t.Run("RequireToken", func(t *testing.T) {
		w, _ := ts.do(t, http.MethodGet, "/api/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Create", func(t *testing.T) {
		ts.post.On("Create", mock.Anything, aliceID, domain.TextInput{Text: "hello"}).Return(post, nil).Once()

		w, env := ts.do(t, http.MethodPost, "/api/posts", "alice-token", domain.TextInput{Text: "hello"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(env.Data), `"likes":[]`)
	})

	t.Run("NonAuthorDelete", func(t *testing.T) {
		ts.post.On("Delete", mock.Anything, postID, bobID).Return(domain.ErrNotAuthorized).Once()

		w, env := ts.do(t, http.MethodDelete, "/api/posts/"+postID, "bob-token", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "User not authorized", env.Message)
	})

	t.Run("LikeReturnsLikes", func(t *testing.T) {
		liked := *post
		liked.Likes = []domain.Like{{UserID: aliceID}}
		ts.post.On("Like", mock.Anything, postID, aliceID).Return(&liked, nil).Once()

		w, env := ts.do(t, http.MethodPut, "/api/posts/like/"+postID, "alice-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"user":"`+aliceID+`"}]`, string(env.Data))
	})

	t.Run("DoubleLike", func(t *testing.T) {
		ts.post.On("Like", mock.Anything, postID, aliceID).Return(nil, domain.ErrAlreadyLiked).Once()

		w, env := ts.do(t, http.MethodPut, "/api/posts/like/"+postID, "alice-token", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Post already liked", env.Message)
	})

	t.Run("UnlikeWithoutLike", func(t *testing.T) {
		ts.post.On("Unlike", mock.Anything, postID, bobID).Return(nil, domain.ErrNotLiked).Once()

		w, _ := ts.do(t, http.MethodPut, "/api/posts/unlike/"+postID, "bob-token", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("RemoveOthersComment", func(t *testing.T) {
		ts.post.On("RemoveComment", mock.Anything, postID, "c1", bobID).Return(nil, domain.ErrNotAuthorized).Once()

		w, _ := ts.do(t, http.MethodDelete, "/api/posts/comment/"+postID+"/c1", "bob-token", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UnexpectedErrorIsHidden", func(t *testing.T) {
		ts.post.On("List", mock.Anything).Return(nil, assert.AnError).Once()

		w, env := ts.do(t, http.MethodGet, "/api/posts", "alice-token", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Server Error", env.Message)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{status: map[string]string{"database": "ok"}, healthy: true})
		w, env := ts.do(t, http.MethodGet, "/api/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"database":"ok"}`, string(env.Data))
	})

	t.Run("Degraded", func(t *testing.T) {
		ts := newTestServer(t, nil, stubHealth{status: map[string]string{"database": "unavailable"}, healthy: false})
		w, env := ts.do(t, http.MethodGet, "/api/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"database":"unavailable"}`, string(env.Error))
	})
}
