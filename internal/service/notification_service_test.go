package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/pkg/config"
	"github.com/studiohq/studio-api/pkg/notify"
)

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (c *captureNotifier) Send(ctx context.Context, destination string, channel notify.Channel, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, destination+"|"+string(channel)+"|"+message)
	select {
	case c.done <- struct{}{}:
	default:
	}
	return nil
}

func TestNotificationServiceDispatches(t *testing.T) {
	capture := &captureNotifier{done: make(chan struct{}, 1)}
	svc := NewNotificationService(capture, config.NotificationsConfig{Workers: 1, MaxRetries: 1, RetryDelay: time.Millisecond}, zap.NewNop())
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Notify("jane@example.com", notify.ChannelEmail, "welcome")

	select {
	case <-capture.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}

	capture.mu.Lock()
	defer capture.mu.Unlock()
	require.Len(t, capture.sent, 1)
	assert.Equal(t, "jane@example.com|email|welcome", capture.sent[0])
}

func TestNotificationServiceBlankDestination(t *testing.T) {
	capture := &captureNotifier{done: make(chan struct{}, 1)}
	svc := NewNotificationService(capture, config.NotificationsConfig{Workers: 1}, zap.NewNop())
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Notify("", notify.ChannelPhone, "checked in")

	select {
	case <-capture.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}

	capture.mu.Lock()
	defer capture.mu.Unlock()
	require.Len(t, capture.sent, 1)
	assert.Equal(t, "(unknown)|phone|checked in", capture.sent[0])
}
