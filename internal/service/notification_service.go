package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hiring-service/internal/events"
	"github.com/spec-kit/hiring-service/internal/mail"
)

// NotificationService turns domain events into outbound email.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
}

func (n *NotificationService) handleApplicationSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationSubmittedPayload)
	if !ok {
		return fmt.Errorf("application_submitted: unexpected payload %T", event.Payload)
	}
	n.logger.Info("ApplicationSubmitted",
		zap.String("job_id", event.JobID),
		zap.String("candidate", event.Actor.Username))

	if n.mailer == nil {
		return nil
	}
	msg := applicationMessage(payload)
	if err := n.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify recruiter: %w", err)
	}
	return nil
}

func applicationMessage(p events.ApplicationSubmittedPayload) mail.Message {
	c := p.Candidate
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "A new candidate has applied for the '%s' position.\n\n", p.JobRole)
	fmt.Fprintf(&b, "Candidate Name: %s\n", c.FullName)
	fmt.Fprintf(&b, "Candidate Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Candidate Experience: %d years\n", c.TotalExperience)
	fmt.Fprintf(&b, "Candidate Skills: %s\n\n", strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "You can view their resume here: %s\n\n", c.ResumeURL)
	b.WriteString("Thank you,\nThe Hiring Platform")

	return mail.Message{
		To:      p.RecruiterEmail,
		Subject: "New Application for " + p.JobRole,
		Body:    b.String(),
	}
}
