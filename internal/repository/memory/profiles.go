package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
)

// CandidateProfileRepository keeps one profile per user id.
type CandidateProfileRepository struct {
	mu       sync.RWMutex
	byUserID map[string]domain.CandidateProfile
}

var _ repository.CandidateProfileRepository = (*CandidateProfileRepository)(nil)

// NewCandidateProfileRepository returns an empty repository.
func NewCandidateProfileRepository() *CandidateProfileRepository {
	return &CandidateProfileRepository{byUserID: make(map[string]domain.CandidateProfile)}
}

func (r *CandidateProfileRepository) Upsert(_ context.Context, profile *domain.CandidateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byUserID[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = uuid.NewString()
	}
	profile.UpdatedAt = time.Now().UTC()

	stored := *profile
	stored.Skills = append([]string(nil), profile.Skills...)
	r.byUserID[profile.UserID] = stored
	return nil
}

func (r *CandidateProfileRepository) GetByUserID(_ context.Context, userID string) (*domain.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byUserID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	profile.Skills = append([]string(nil), profile.Skills...)
	return &profile, nil
}
