package domain

import "time"

// CandidateProfile is the public summary a job seeker maintains. Each user
// owns at most one profile.
type CandidateProfile struct {
	ID              string
	UserID          string
	FullName        string
	Email           string
	TotalExperience int
	Skills          []string
	ResumeURL       string
	UpdatedAt       time.Time
}
