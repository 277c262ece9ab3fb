package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/events"
	"github.com/spec-kit/hiring-service/internal/repository"
	apperrors "github.com/spec-kit/hiring-service/pkg/util/errorutil"
)

// PostInput describes a new job posting.
type PostInput struct {
	Role        string
	Description string
	Experience  int
	SkillSet    []string
}

// PostService coordinates job posting workflows.
type PostService struct {
	postings   repository.JobPostingRepository
	profiles   repository.CandidateProfileRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// PostDependencies bundles repositories for the post service.
type PostDependencies struct {
	PostingRepo repository.JobPostingRepository
	ProfileRepo repository.CandidateProfileRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewPostService constructs the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{
		postings:   deps.PostingRepo,
		profiles:   deps.ProfileRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListAll returns every posting.
func (s *PostService) ListAll(ctx context.Context) ([]domain.JobPosting, error) {
	return s.postings.List(ctx)
}

// Search returns the best matches for text.
func (s *PostService) Search(ctx context.Context, text string) ([]domain.JobPosting, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.JobPosting{}, nil
	}
	return s.postings.Search(ctx, text, repository.SearchLimit)
}

// Add publishes a posting owned by the calling recruiter.
func (s *PostService) Add(ctx context.Context, recruiter domain.Principal, input PostInput) (*domain.JobPosting, error) {
	posting := &domain.JobPosting{
		Role:        strings.TrimSpace(input.Role),
		Description: strings.TrimSpace(input.Description),
		Experience:  input.Experience,
		SkillSet:    input.SkillSet,
		RecruiterID: recruiter.UserID,
	}
	if err := s.postings.Create(ctx, posting); err != nil {
		return nil, err
	}
	return posting, nil
}

// Apply records the caller's interest in a posting and notifies its recruiter.
func (s *PostService) Apply(ctx context.Context, candidate domain.Principal, jobID string) error {
	profile, err := s.profiles.GetByUserID(ctx, candidate.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewBadRequest("Please create your profile before applying.")
		}
		return err
	}

	job, err := s.postings.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Job not found.")
		}
		return err
	}

	recruiter, err := s.users.GetByID(ctx, job.RecruiterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Could not find the recruiter for this job.")
		}
		return err
	}

	return s.dispatcher.Publish(ctx, events.Event{
		ID:    uuid.NewString(),
		Type:  events.EventApplicationSubmitted,
		JobID: job.ID,
		Actor: events.Actor{
			UserID:   candidate.UserID,
			Username: candidate.Username,
			Role:     candidate.Role,
		},
		Timestamp: time.Now().UTC(),
		Payload: events.ApplicationSubmittedPayload{
			JobRole:        job.Role,
			RecruiterEmail: recruiter.Email,
			Candidate:      *profile,
		},
	})
}
