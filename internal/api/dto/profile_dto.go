package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/hiring-service/internal/domain"
)

// CandidateProfileRequest payload for POST /candidate/profile.
type CandidateProfileRequest struct {
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	TotalExperience int      `json:"totalExperience"`
	Skills          []string `json:"skills"`
	ResumeURL       string   `json:"resumeUrl"`
}

// Validate checks the profile payload.
func (r CandidateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(0, 200)),
		validation.Field(&r.Email, validation.Length(0, 254), is.Email),
		validation.Field(&r.TotalExperience, validation.Min(0), validation.Max(60)),
		validation.Field(&r.Skills, validation.Length(0, 50)),
		validation.Field(&r.ResumeURL, is.URL),
	)
}

// CandidateProfileResponse is the public view of a profile.
type CandidateProfileResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	TotalExperience int       `json:"totalExperience"`
	Skills          []string  `json:"skills"`
	ResumeURL       string    `json:"resumeUrl"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewCandidateProfileResponse maps a domain profile.
func NewCandidateProfileResponse(p domain.CandidateProfile) CandidateProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		FullName:        p.FullName,
		Email:           p.Email,
		TotalExperience: p.TotalExperience,
		Skills:          skills,
		ResumeURL:       p.ResumeURL,
		UpdatedAt:       p.UpdatedAt,
	}
}
