// Package seed fills a development database with fake developers, profiles and posts.
// It goes through the usecases so seeded data obeys the same validation as API traffic.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/validation"

	"github.com/brianvoe/gofakeit/v6"
)

type Options struct {
	Users        int
	PostsPerUser int
	Password     string
}

func DefaultOptions() Options {
	return Options{Users: 10, PostsPerUser: 2, Password: "password123"}
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

type Seeder struct {
	auth     domain.AuthUsecase
	profiles domain.ProfileUsecase
	posts    domain.PostUsecase
	faker    *gofakeit.Faker
}

// New builds a seeder. The same seed yields the same names, texts and dates.
func New(auth domain.AuthUsecase, profiles domain.ProfileUsecase, posts domain.PostUsecase, seed int64) *Seeder {
	return &Seeder{
		auth:     auth,
		profiles: profiles,
		posts:    posts,
		faker:    gofakeit.New(seed),
	}
}

var degrees = []string{"BSc", "MSc", "PhD", "Bootcamp Certificate"}

func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	var userIDs []string
	var postIDs []string

	for i := 0; i < opts.Users; i++ {
		userID, err := s.createUser(ctx, i, opts.Password)
		if err != nil {
			return sum, fmt.Errorf("seed user %d: %w", i, err)
		}
		sum.Users++
		userIDs = append(userIDs, userID)

		if err := s.createProfile(ctx, userID); err != nil {
			return sum, fmt.Errorf("seed profile for %s: %w", userID, err)
		}
		sum.Profiles++

		for j := 0; j < opts.PostsPerUser; j++ {
			post, err := s.posts.Create(ctx, userID, domain.TextInput{Text: s.faker.HackerPhrase()})
			if err != nil {
				return sum, fmt.Errorf("seed post for %s: %w", userID, err)
			}
			sum.Posts++
			postIDs = append(postIDs, post.ID)
		}
	}

	// Every user likes and comments on the post right after their own ones.
	if len(postIDs) < 2 {
		return sum, nil
	}
	for i, userID := range userIDs {
		postID := postIDs[(i*opts.PostsPerUser+opts.PostsPerUser)%len(postIDs)]
		if _, err := s.posts.Like(ctx, postID, userID); err == nil {
			sum.Likes++
		}
		if _, err := s.posts.AddComment(ctx, postID, userID, domain.TextInput{Text: s.faker.Sentence(8)}); err != nil {
			return sum, fmt.Errorf("seed comment by %s: %w", userID, err)
		}
		sum.Comments++
	}
	return sum, nil
}

func (s *Seeder) createUser(ctx context.Context, i int, password string) (string, error) {
	first, last := s.faker.FirstName(), s.faker.LastName()
	email := fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i)

	token, err := s.auth.Register(ctx, domain.RegisterInput{
		Name:     first + " " + last,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	return s.auth.VerifyToken(token)
}

func (s *Seeder) createProfile(ctx context.Context, userID string) error {
	skills := make([]string, 0, 4)
	for k := 0; k < 4; k++ {
		skills = append(skills, s.faker.ProgrammingLanguage())
	}

	_, err := s.profiles.Upsert(ctx, userID, domain.ProfileInput{
		Company:        s.faker.Company(),
		Website:        s.faker.URL(),
		Bio:            s.faker.Sentence(12),
		Location:       s.faker.City(),
		Status:         s.faker.JobTitle(),
		GithubUsername: s.faker.Username(),
		Skills:         strings.Join(skills, ", "),
	})
	if err != nil {
		return err
	}

	from := s.date(10, 3)
	if _, err := s.profiles.AddExperience(ctx, userID, domain.ExperienceInput{
		Title:       s.faker.JobTitle(),
		Company:     s.faker.Company(),
		Location:    s.faker.City(),
		From:        from,
		Current:     true,
		Description: s.faker.Sentence(10),
	}); err != nil {
		return err
	}

	_, err = s.profiles.AddEducation(ctx, userID, domain.EducationInput{
		School:       s.faker.LastName() + " University",
		Degree:       s.faker.RandomString(degrees),
		FieldOfStudy: "Computer Science",
		From:         s.date(15, 11),
		To:           s.date(11, 10),
	})
	return err
}

// date picks a day between maxYears and minYears ago.
func (s *Seeder) date(maxYears, minYears int) string {
	now := time.Now()
	return s.faker.DateRange(now.AddDate(-maxYears, 0, 0), now.AddDate(-minYears, 0, 0)).Format(validation.DateLayout)
}
