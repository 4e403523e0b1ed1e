package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRepository returns (nil, nil) from getters when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id string) error
}

// Session is what a successful login yields.
type Session struct {
	Token  string
	UserID string
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Authenticate(ctx context.Context, input LoginInput) (*Session, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	VerifyToken(token string) (string, error)
}
