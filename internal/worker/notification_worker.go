package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hiring-service/internal/mail"
)

const (
	defaultPollTimeout = 5 * time.Second
	errorBackoff       = time.Second
)

// MailSource yields queued messages.
type MailSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (mail.Message, bool, error)
}

// NotificationWorker drains the mail outbox into a transport.
type NotificationWorker struct {
	source      MailSource
	sender      mail.Mailer
	logger      *zap.Logger
	pollTimeout time.Duration
}

// NewNotificationWorker constructs the worker.
func NewNotificationWorker(source MailSource, sender mail.Mailer, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		source:      source,
		sender:      sender,
		logger:      logger,
		pollTimeout: defaultPollTimeout,
	}
}

// Run processes messages until ctx is cancelled. Delivery failures are
// logged and the message is dropped.
func (w *NotificationWorker) Run(ctx context.Context) {
	w.logger.Info("notification worker started")
	defer w.logger.Info("notification worker stopped")

	for ctx.Err() == nil {
		if _, err := w.ProcessOne(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("mail queue read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(errorBackoff):
			}
		}
	}
}

// ProcessOne handles at most one queued message and reports whether one was
// found.
func (w *NotificationWorker) ProcessOne(ctx context.Context) (bool, error) {
	msg, ok, err := w.source.Dequeue(ctx, w.pollTimeout)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := w.sender.Send(ctx, msg); err != nil {
		if errors.Is(err, context.Canceled) {
			return true, err
		}
		w.logger.Error("mail delivery failed", zap.String("to", msg.To), zap.Error(err))
		return true, nil
	}
	w.logger.Debug("mail delivered", zap.String("to", msg.To))
	return true, nil
}
