package service

import (
	"context"
	"errors"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
	apperrors "github.com/spec-kit/hiring-service/pkg/util/errorutil"
)

// ProfileInput describes the editable profile fields.
type ProfileInput struct {
	FullName        string
	Email           string
	TotalExperience int
	Skills          []string
	ResumeURL       string
}

// CandidateService manages candidate profiles.
type CandidateService struct {
	profiles repository.CandidateProfileRepository
}

// NewCandidateService constructs the service.
func NewCandidateService(profiles repository.CandidateProfileRepository) *CandidateService {
	return &CandidateService{profiles: profiles}
}

// SaveProfile creates or replaces the caller's profile. Ownership always
// comes from the caller, never from the request body.
func (s *CandidateService) SaveProfile(ctx context.Context, owner domain.Principal, input ProfileInput) (*domain.CandidateProfile, error) {
	profile := &domain.CandidateProfile{
		UserID:          owner.UserID,
		FullName:        input.FullName,
		Email:           input.Email,
		TotalExperience: input.TotalExperience,
		Skills:          input.Skills,
		ResumeURL:       input.ResumeURL,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the profile owned by userID.
func (s *CandidateService) GetProfile(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Profile not found for the specified user.")
		}
		return nil, err
	}
	return profile, nil
}
