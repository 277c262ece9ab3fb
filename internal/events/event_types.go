package events

import (
	"time"

	"github.com/spec-kit/hiring-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	JobID     string      `json:"job_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload carries what the recruiter is told about an applicant.
type ApplicationSubmittedPayload struct {
	JobRole        string                  `json:"job_role"`
	RecruiterEmail string                  `json:"recruiter_email"`
	Candidate      domain.CandidateProfile `json:"candidate"`
}
