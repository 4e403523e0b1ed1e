package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/apperror"
	"go-devconnector-backend/pkg/auth"
	"go-devconnector-backend/pkg/avatar"
	"go-devconnector-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthUsecase(userRepo domain.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		now:      time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(u.validate, input); err != nil {
		return "", err
	}

	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrDuplicateEmail
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return "", apperror.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Avatar:       avatar.Gravatar(input.Email),
		CreatedAt:    u.now().UTC(),
	}
	// A concurrent registration that slips past the lookup still fails here on the unique email.
	if err := u.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return u.issue(user.ID)
}

func (u *authUsecase) Authenticate(ctx context.Context, input domain.LoginInput) (*domain.Session, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(u.validate, input); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !u.hasher.Compare(user.PasswordHash, input.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, UserID: user.ID}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// DeleteUser is idempotent: deleting an unknown id succeeds.
func (u *authUsecase) DeleteUser(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return u.userRepo.Delete(ctx, id)
}

func (u *authUsecase) VerifyToken(token string) (string, error) {
	userID, err := u.tokens.Verify(token)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

func (u *authUsecase) issue(userID string) (string, error) {
	token, err := u.tokens.Issue(userID)
	if err != nil {
		if errors.Is(err, auth.ErrSigning) {
			return "", apperror.Internal(err)
		}
		return "", err
	}
	return token, nil
}
