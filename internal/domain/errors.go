package domain

import "go-devconnector-backend/pkg/apperror"

// Failures shared by the usecases. Compare with errors.Is.
var (
	ErrDuplicateEmail     = apperror.Conflict("User already exists")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid credentials")
	ErrMissingToken       = apperror.Unauthorized("No token, authorization denied")
	ErrInvalidToken       = apperror.Unauthorized("Invalid token")
	ErrNotAuthorized      = apperror.Forbidden("User not authorized")
	ErrAlreadyLiked       = apperror.Conflict("Post already liked")
	ErrNotLiked           = apperror.Conflict("Post has not yet been liked")
	ErrLoginBlocked       = apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	ErrUserNotFound       = apperror.NotFound("User not found")
	ErrProfileNotFound    = apperror.NotFound("There is no profile for this user")
	ErrExperienceNotFound = apperror.NotFound("Experience not found")
	ErrEducationNotFound  = apperror.NotFound("Education not found")
	ErrPostNotFound       = apperror.NotFound("Post not found")
	ErrCommentNotFound    = apperror.NotFound("Comment does not exist")
	ErrGithubUserNotFound = apperror.NotFound("No Github profile found")
)
