package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes every message to the application log. It is the default
// in development and the fallback when no provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier constructs a log backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Send logs the message instead of delivering it.
func (n *LogNotifier) Send(_ context.Context, destination string, channel Channel, message string) error {
	n.logger.Info("notification",
		zap.String("channel", string(channel)),
		zap.String("to", destination),
		zap.String("message", message),
	)
	return nil
}
