package mailer

import (
	"context"

	"github.com/labstack/gommon/log"
)

// logTransport logs emails instead of sending them. Used in development when
// no SMTP server is configured.
type logTransport struct{}

func NewLogTransport() *logTransport {
	return &logTransport{}
}

func (t *logTransport) Name() string {
	return "log"
}

func (t *logTransport) Send(ctx context.Context, email Email) error {
	log.Infof("mail logged, not sent: to=%s subject=%q", email.To, email.Subject)
	log.Debugf("mail body:\n%s", email.Body)
	return nil
}
