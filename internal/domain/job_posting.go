package domain

import "time"

// JobPosting is an open position published by a recruiter.
type JobPosting struct {
	ID          string
	Role        string
	Description string
	Experience  int
	SkillSet    []string
	RecruiterID string
	CreatedAt   time.Time
}
