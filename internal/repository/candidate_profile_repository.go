package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hiring-service/internal/domain"
)

// CandidateProfileRepository stores one profile per user.
type CandidateProfileRepository interface {
	// Upsert creates or replaces the profile owned by profile.UserID.
	Upsert(ctx context.Context, profile *domain.CandidateProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error)
}

type candidateProfileRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateProfileRepository instantiates repository.
func NewCandidateProfileRepository(pool *pgxpool.Pool) CandidateProfileRepository {
	return &candidateProfileRepository{pool: pool}
}

func (r *candidateProfileRepository) Upsert(ctx context.Context, profile *domain.CandidateProfile) error {
	const query = `
        INSERT INTO candidate_profiles (id, user_id, full_name, email, total_experience, skills, resume_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (user_id) DO UPDATE SET
            full_name=EXCLUDED.full_name,
            email=EXCLUDED.email,
            total_experience=EXCLUDED.total_experience,
            skills=EXCLUDED.skills,
            resume_url=EXCLUDED.resume_url,
            updated_at=NOW()
        RETURNING id, updated_at`

	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		profile.UserID,
		profile.FullName,
		profile.Email,
		profile.TotalExperience,
		profile.Skills,
		profile.ResumeURL,
	).Scan(&profile.ID, &profile.UpdatedAt)
	return mapPgError(err)
}

func (r *candidateProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	const query = `
        SELECT id, user_id, full_name, email, total_experience, skills, resume_url, updated_at
        FROM candidate_profiles WHERE user_id=$1`

	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrNotFound
	}
	var profile domain.CandidateProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.TotalExperience,
		&profile.Skills,
		&profile.ResumeURL,
		&profile.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &profile, nil
}
