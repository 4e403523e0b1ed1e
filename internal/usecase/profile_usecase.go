package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/apperror"
	"go-devconnector-backend/pkg/github"
	"go-devconnector-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type profileUsecase struct {
	repo         domain.ProfileRepository
	github       domain.GithubClient
	validate     *validator.Validate
	cascadePosts bool
}

// NewProfileUsecase wires the profile store. cascadePosts makes DeleteOwn remove the caller's posts too.
func NewProfileUsecase(repo domain.ProfileRepository, githubClient domain.GithubClient, validate *validator.Validate, cascadePosts bool) domain.ProfileUsecase {
	return &profileUsecase{
		repo:         repo,
		github:       githubClient,
		validate:     validate,
		cascadePosts: cascadePosts,
	}
}

func (u *profileUsecase) GetOwn(ctx context.Context, callerID string) (*domain.Profile, error) {
	return u.mustGet(ctx, callerID)
}

func (u *profileUsecase) Upsert(ctx context.Context, callerID string, input domain.ProfileInput) (*domain.Profile, error) {
	if err := validation.Struct(u.validate, input); err != nil {
		return nil, err
	}

	fields := domain.ProfileFields{
		Company:        strings.TrimSpace(input.Company),
		Website:        strings.TrimSpace(input.Website),
		Bio:            strings.TrimSpace(input.Bio),
		Location:       strings.TrimSpace(input.Location),
		Status:         strings.TrimSpace(input.Status),
		GithubUsername: strings.TrimSpace(input.GithubUsername),
		Skills:         ParseSkills(input.Skills),
		Social: domain.SocialLinks{
			Youtube:   strings.TrimSpace(input.Youtube),
			Facebook:  strings.TrimSpace(input.Facebook),
			Linkedin:  strings.TrimSpace(input.Linkedin),
			Twitter:   strings.TrimSpace(input.Twitter),
			Instagram: strings.TrimSpace(input.Instagram),
		},
	}

	return u.repo.Upsert(ctx, callerID, fields)
}

// ParseSkills splits a comma-separated list, trimming entries and dropping empty ones.
func ParseSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func (u *profileUsecase) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	return u.repo.List(ctx)
}

func (u *profileUsecase) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return u.mustGet(ctx, userID)
}

func (u *profileUsecase) DeleteOwn(ctx context.Context, callerID string) error {
	if _, err := uuid.Parse(callerID); err != nil {
		return domain.ErrUserNotFound
	}
	return u.repo.DeleteWithUser(ctx, callerID, u.cascadePosts)
}

func (u *profileUsecase) AddExperience(ctx context.Context, callerID string, input domain.ExperienceInput) (*domain.Profile, error) {
	if err := validation.Struct(u.validate, input); err != nil {
		return nil, err
	}

	profile, err := u.mustGet(ctx, callerID)
	if err != nil {
		return nil, err
	}

	exp := &domain.Experience{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		From:        input.From,
		To:          optionalDate(input.To),
		Current:     input.Current,
		Description: input.Description,
	}
	if err := u.repo.AddExperience(ctx, profile.ID, exp); err != nil {
		return nil, err
	}

	profile.Experience = append([]domain.Experience{*exp}, profile.Experience...)
	return profile, nil
}

func (u *profileUsecase) RemoveExperience(ctx context.Context, callerID, experienceID string) (*domain.Profile, error) {
	profile, err := u.mustGet(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(experienceID); err != nil {
		return nil, domain.ErrExperienceNotFound
	}

	removed, err := u.repo.RemoveExperience(ctx, profile.ID, experienceID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.ErrExperienceNotFound
	}

	kept := make([]domain.Experience, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		if e.ID != experienceID {
			kept = append(kept, e)
		}
	}
	profile.Experience = kept
	return profile, nil
}

func (u *profileUsecase) AddEducation(ctx context.Context, callerID string, input domain.EducationInput) (*domain.Profile, error) {
	if err := validation.Struct(u.validate, input); err != nil {
		return nil, err
	}

	profile, err := u.mustGet(ctx, callerID)
	if err != nil {
		return nil, err
	}

	edu := &domain.Education{
		ID:           uuid.NewString(),
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         input.From,
		To:           optionalDate(input.To),
		Current:      input.Current,
		Description:  input.Description,
	}
	if err := u.repo.AddEducation(ctx, profile.ID, edu); err != nil {
		return nil, err
	}

	profile.Education = append([]domain.Education{*edu}, profile.Education...)
	return profile, nil
}

func (u *profileUsecase) RemoveEducation(ctx context.Context, callerID, educationID string) (*domain.Profile, error) {
	profile, err := u.mustGet(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(educationID); err != nil {
		return nil, domain.ErrEducationNotFound
	}

	removed, err := u.repo.RemoveEducation(ctx, profile.ID, educationID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.ErrEducationNotFound
	}

	kept := make([]domain.Education, 0, len(profile.Education))
	for _, e := range profile.Education {
		if e.ID != educationID {
			kept = append(kept, e)
		}
	}
	profile.Education = kept
	return profile, nil
}

func (u *profileUsecase) GithubRepos(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrGithubUserNotFound
	}
	repos, err := u.github.LatestRepos(ctx, username)
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			return nil, domain.ErrGithubUserNotFound
		}
		return nil, apperror.Internal(err)
	}
	return repos, nil
}

func (u *profileUsecase) mustGet(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrProfileNotFound
	}
	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func optionalDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
