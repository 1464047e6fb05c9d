package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"

	defaultSubject = "Your studio confirmation"
)

// SendgridNotifier delivers email notifications through the SendGrid v3 API.
// Phone-channel messages have no SMS provider behind them and are logged.
type SendgridNotifier struct {
	key    string
	from   *sgmail.Email
	logger *zap.Logger
}

var _ Notifier = (*SendgridNotifier)(nil)

// NewSendgridNotifier constructs a SendGrid backed notifier.
func NewSendgridNotifier(apiKey, fromEmail, fromName string, logger *zap.Logger) *SendgridNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendgridNotifier{
		key:    apiKey,
		from:   sgmail.NewEmail(fromName, fromEmail),
		logger: logger,
	}
}

// Send dispatches one message. Email goes through SendGrid; phone falls back
// to a log line, matching the studio's current contact options.
func (n *SendgridNotifier) Send(ctx context.Context, destination string, channel Channel, message string) error {
	if destination == "" {
		return fmt.Errorf("notify: empty destination")
	}
	if channel != ChannelEmail {
		n.logger.Info("notification (no SMS provider configured)",
			zap.String("channel", string(channel)),
			zap.String("to", destination),
			zap.String("message", message),
		)
		return nil
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	p := sgmail.NewPersonalization()
	p.Subject = defaultSubject
	p.AddTos(sgmail.NewEmail("", destination))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", message))

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
