package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const dateLayout = "2006-01-02"

const profileColumns = `
	p.id, p.user_id, u.name, u.avatar,
	COALESCE(p.company, ''), COALESCE(p.website, ''), COALESCE(p.bio, ''), COALESCE(p.location, ''),
	COALESCE(p.status, ''), COALESCE(p.github_username, ''), p.skills,
	COALESCE(p.youtube, ''), COALESCE(p.facebook, ''), COALESCE(p.linkedin, ''),
	COALESCE(p.twitter, ''), COALESCE(p.instagram, ''),
	p.created_at, p.updated_at`

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var skills []string
	err := row.Scan(
		&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Company, &p.Website, &p.Bio, &p.Location,
		&p.Status, &p.GithubUsername, pq.Array(&skills),
		&p.Social.Youtube, &p.Social.Facebook, &p.Social.Linkedin,
		&p.Social.Twitter, &p.Social.Instagram,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []string{}
	}
	p.Skills = skills
	p.Experience = []domain.Experience{}
	p.Education = []domain.Education{}
	return &p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}

	if err := r.loadEntries(ctx, []*domain.Profile{p}); err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	profiles := []*domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := r.loadEntries(ctx, profiles); err != nil {
		return nil, apperror.Internal(err)
	}
	return profiles, nil
}

// loadEntries fills experience and education lists, newest first.
func (r *profileRepository) loadEntries(ctx context.Context, profiles []*domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Profile, len(profiles))
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	expRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, title, company, location, from_date, to_date, current, description
		FROM profile_experiences WHERE profile_id = ANY($1::uuid[])
		ORDER BY seq DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch experience: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var e domain.Experience
		var profileID string
		var from time.Time
		var to *time.Time
		if err := expRows.Scan(&e.ID, &profileID, &e.Title, &e.Company, &e.Location, &from, &to, &e.Current, &e.Description); err != nil {
			return err
		}
		e.From = from.Format(dateLayout)
		e.To = formatDate(to)
		if p, ok := byID[profileID]; ok {
			p.Experience = append(p.Experience, e)
		}
	}
	if err := expRows.Err(); err != nil {
		return err
	}

	eduRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, school, degree, field_of_study, from_date, to_date, current, description
		FROM profile_educations WHERE profile_id = ANY($1::uuid[])
		ORDER BY seq DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch education: %w", err)
	}
	defer eduRows.Close()

	for eduRows.Next() {
		var e domain.Education
		var profileID string
		var from time.Time
		var to *time.Time
		if err := eduRows.Scan(&e.ID, &profileID, &e.School, &e.Degree, &e.FieldOfStudy, &from, &to, &e.Current, &e.Description); err != nil {
			return err
		}
		e.From = from.Format(dateLayout)
		e.To = formatDate(to)
		if p, ok := byID[profileID]; ok {
			p.Education = append(p.Education, e)
		}
	}
	return eduRows.Err()
}

// Upsert creates the profile or merges non-empty fields into the stored one in a single statement.
func (r *profileRepository) Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error) {
	query := `
		INSERT INTO profiles (
			id, user_id, company, website, bio, location, status, github_username, skills,
			youtube, facebook, linkedin, twitter, instagram, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::text[], '{}'),
			$10, $11, $12, $13, $14, NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			company         = COALESCE(EXCLUDED.company, profiles.company),
			website         = COALESCE(EXCLUDED.website, profiles.website),
			bio             = COALESCE(EXCLUDED.bio, profiles.bio),
			location        = COALESCE(EXCLUDED.location, profiles.location),
			status          = COALESCE(EXCLUDED.status, profiles.status),
			github_username = COALESCE(EXCLUDED.github_username, profiles.github_username),
			skills          = COALESCE($9::text[], profiles.skills),
			youtube         = COALESCE(EXCLUDED.youtube, profiles.youtube),
			facebook        = COALESCE(EXCLUDED.facebook, profiles.facebook),
			linkedin        = COALESCE(EXCLUDED.linkedin, profiles.linkedin),
			twitter         = COALESCE(EXCLUDED.twitter, profiles.twitter),
			instagram       = COALESCE(EXCLUDED.instagram, profiles.instagram),
			updated_at      = NOW()`

	var skills interface{}
	if len(fields.Skills) > 0 {
		skills = pq.Array(fields.Skills)
	}

	_, err := r.db.Exec(ctx, query,
		uuid.NewString(), userID,
		nullIfEmpty(fields.Company), nullIfEmpty(fields.Website), nullIfEmpty(fields.Bio),
		nullIfEmpty(fields.Location), nullIfEmpty(fields.Status), nullIfEmpty(fields.GithubUsername),
		skills,
		nullIfEmpty(fields.Social.Youtube), nullIfEmpty(fields.Social.Facebook), nullIfEmpty(fields.Social.Linkedin),
		nullIfEmpty(fields.Social.Twitter), nullIfEmpty(fields.Social.Instagram),
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperror.Internal(err)
	}

	return r.GetByUserID(ctx, userID)
}

// DeleteWithUser removes the profile and its owner (and optionally the owner's posts) atomically.
func (r *profileRepository) DeleteWithUser(ctx context.Context, userID string, cascadePosts bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if cascadePosts {
		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID); err != nil {
			return apperror.Internal(err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return apperror.Internal(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return apperror.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, profileID string, exp *domain.Experience) error {
	query := `INSERT INTO profile_experiences (id, profile_id, title, company, location, from_date, to_date, current, description)
	          VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		exp.ID, profileID, exp.Title, exp.Company, exp.Location, exp.From, exp.To, exp.Current, exp.Description,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrProfileNotFound
		}
		return apperror.Internal(err)
	}
	return r.touch(ctx, profileID)
}

func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, experienceID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM profile_experiences WHERE id = $1 AND profile_id = $2`, experienceID, profileID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	return true, r.touch(ctx, profileID)
}

func (r *profileRepository) AddEducation(ctx context.Context, profileID string, edu *domain.Education) error {
	query := `INSERT INTO profile_educations (id, profile_id, school, degree, field_of_study, from_date, to_date, current, description)
	          VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		edu.ID, profileID, edu.School, edu.Degree, edu.FieldOfStudy, edu.From, edu.To, edu.Current, edu.Description,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrProfileNotFound
		}
		return apperror.Internal(err)
	}
	return r.touch(ctx, profileID)
}

func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, educationID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM profile_educations WHERE id = $1 AND profile_id = $2`, educationID, profileID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	return true, r.touch(ctx, profileID)
}

func (r *profileRepository) touch(ctx context.Context, profileID string) error {
	if _, err := r.db.Exec(ctx, `UPDATE profiles SET updated_at = NOW() WHERE id = $1`, profileID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
