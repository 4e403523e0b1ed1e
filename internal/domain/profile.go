package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ProfileOwner is the public part of the owning user, joined on read.
type ProfileOwner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	From        string  `json:"from"`
	To          *string `json:"to"`
	Current     bool    `json:"current"`
	Description string  `json:"description"`
}

type Education struct {
	ID           string  `json:"id"`
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"fieldofstudy"`
	From         string  `json:"from"`
	To           *string `json:"to"`
	Current      bool    `json:"current"`
	Description  string  `json:"description"`
}

type Profile struct {
	ID             string       `json:"id"`
	User           ProfileOwner `json:"user"`
	Company        string       `json:"company"`
	Website        string       `json:"website"`
	Bio            string       `json:"bio"`
	Location       string       `json:"location"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ProfileInput is the upsert payload. Empty fields keep the stored value.
type ProfileInput struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"notblank"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"csvlist"`
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
}

// ProfileFields is the normalized form of ProfileInput handed to the repository.
type ProfileFields struct {
	Company        string
	Website        string
	Bio            string
	Location       string
	Status         string
	GithubUsername string
	Skills         []string
	Social         SocialLinks
}

type ExperienceInput struct {
	Title       string `json:"title" validate:"notblank"`
	Company     string `json:"company" validate:"notblank"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required,date"`
	To          string `json:"to" validate:"date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school" validate:"notblank"`
	Degree       string `json:"degree" validate:"notblank"`
	FieldOfStudy string `json:"fieldofstudy" validate:"notblank"`
	From         string `json:"from" validate:"required,date"`
	To           string `json:"to" validate:"date"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// ProfileRepository returns (nil, nil) from getters when no row matches.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Upsert(ctx context.Context, userID string, fields ProfileFields) (*Profile, error)
	DeleteWithUser(ctx context.Context, userID string, cascadePosts bool) error
	AddExperience(ctx context.Context, profileID string, exp *Experience) error
	RemoveExperience(ctx context.Context, profileID, experienceID string) (bool, error)
	AddEducation(ctx context.Context, profileID string, edu *Education) error
	RemoveEducation(ctx context.Context, profileID, educationID string) (bool, error)
}

// GithubClient fetches public repositories of a GitHub user.
type GithubClient interface {
	LatestRepos(ctx context.Context, username string) (json.RawMessage, error)
}

type ProfileUsecase interface {
	GetOwn(ctx context.Context, callerID string) (*Profile, error)
	Upsert(ctx context.Context, callerID string, input ProfileInput) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	DeleteOwn(ctx context.Context, callerID string) error
	AddExperience(ctx context.Context, callerID string, input ExperienceInput) (*Profile, error)
	RemoveExperience(ctx context.Context, callerID, experienceID string) (*Profile, error)
	AddEducation(ctx context.Context, callerID string, input EducationInput) (*Profile, error)
	RemoveEducation(ctx context.Context, callerID, educationID string) (*Profile, error)
	GithubRepos(ctx context.Context, username string) (json.RawMessage, error)
}
