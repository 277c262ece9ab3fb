package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/hiring-service/internal/domain"
)

// JobPostingRequest payload for POST /posts/add. Any recruiter id in the
// body is ignored; ownership comes from the caller.
type JobPostingRequest struct {
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Experience  int      `json:"experience"`
	SkillSet    []string `json:"skillSet"`
}

// Validate checks the posting payload.
func (r JobPostingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Experience, validation.Min(0), validation.Max(60)),
		validation.Field(&r.SkillSet, validation.Length(0, 50)),
	)
}

// JobPostingResponse is the public view of a posting.
type JobPostingResponse struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Experience  int       `json:"experience"`
	SkillSet    []string  `json:"skillSet"`
	RecruiterID string    `json:"recruiterId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewJobPostingResponse maps a domain posting.
func NewJobPostingResponse(p domain.JobPosting) JobPostingResponse {
	skills := p.SkillSet
	if skills == nil {
		skills = []string{}
	}
	return JobPostingResponse{
		ID:          p.ID,
		Role:        p.Role,
		Description: p.Description,
		Experience:  p.Experience,
		SkillSet:    skills,
		RecruiterID: p.RecruiterID,
		CreatedAt:   p.CreatedAt,
	}
}

// NewJobPostingList maps a slice of postings, never returning nil.
func NewJobPostingList(postings []domain.JobPosting) []JobPostingResponse {
	out := make([]JobPostingResponse, 0, len(postings))
	for _, p := range postings {
		out = append(out, NewJobPostingResponse(p))
	}
	return out
}
