package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/pkg/config"
	"github.com/studiohq/studio-api/pkg/jobs"
	"github.com/studiohq/studio-api/pkg/notify"
)

type notificationPayload struct {
	Destination string
	Channel     notify.Channel
	Message     string
}

// NotificationService dispatches confirmation messages through a background
// worker queue. Delivery is at-least-once with bounded retries and never
// blocks or rolls back the request that triggered it.
type NotificationService struct {
	queue    *jobs.Queue
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewNotificationService wires a notifier behind a worker queue.
func NewNotificationService(notifier notify.Notifier, cfg config.NotificationsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NotificationService{notifier: notifier, logger: logger}
	svc.queue = jobs.NewQueue("notifications", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Notify enqueues one message. Enqueue failures are logged, not returned;
// notifications are fire-and-forget from the caller's point of view.
func (s *NotificationService) Notify(destination string, channel notify.Channel, message string) {
	if destination == "" {
		destination = "(unknown)"
	}
	job := jobs.Job{
		ID:   uuid.NewString(),
		Type: "notification",
		Payload: notificationPayload{
			Destination: destination,
			Channel:     channel,
			Message:     message,
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue notification",
			zap.String("to", destination),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(notificationPayload)
	if !ok {
		return fmt.Errorf("unexpected notification payload %T", job.Payload)
	}
	return s.notifier.Send(ctx, payload.Destination, payload.Channel, payload.Message)
}
