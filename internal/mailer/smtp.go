package mailer

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// smtpTransport sends mail over SMTP with mandatory STARTTLS before AUTH.
type smtpTransport struct {
	config SMTPConfig
}

func NewSMTPTransport(config SMTPConfig) *smtpTransport {
	return &smtpTransport{config}
}

func (t *smtpTransport) Name() string {
	return "smtp"
}

func (t *smtpTransport) Send(ctx context.Context, email Email) error {
	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)

	client, err := mail.NewClient(t.config.Host,
		mail.WithPort(t.config.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.config.Username),
		mail.WithPassword(t.config.Password),
		mail.WithTimeout(t.config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	// DialAndSend tears the connection down on every path, including errors.
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
