// Package notify delivers outreach and verification emails.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

// mailer is the subset of the Gmail client used here
type mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

var (
	_ domain.Notifier = (*Gmail)(nil)
	_ domain.Notifier = (*Log)(nil)
)

// Gmail sends messages through the Gmail API
type Gmail struct {
	client mailer
	logger *logging.Logger
}

func NewGmail(client mailer, logger *logging.Logger) *Gmail {
	return &Gmail{client: client, logger: logger}
}

func (g *Gmail) Send(ctx context.Context, msg domain.Message) error {
	if err := validate(msg); err != nil {
		return err
	}
	if err := g.client.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		return err
	}
	g.logger.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// Log only records messages. Used when no mail provider is configured.
type Log struct {
	logger *logging.Logger
}

func NewLog(logger *logging.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(_ context.Context, msg domain.Message) error {
	if err := validate(msg); err != nil {
		return err
	}
	l.logger.Info("email not delivered, no mail provider configured", "to", msg.To, "subject", msg.Subject, "bytes", len(msg.Body))
	return nil
}

func validate(msg domain.Message) error {
	if strings.TrimSpace(msg.To) == "" || !strings.Contains(msg.To, "@") {
		return fmt.Errorf("notify: recipient %q: %w", msg.To, domain.ErrInvalidInput)
	}
	return nil
}
