package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dg-guptadaksh/commway/internal/model"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	footerText      = "This structured message was sent using the CommWay Gateway."
)

// Email is a transport-ready rendering of a canonical message.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Transport delivers a rendered email via a specific backend.
type Transport interface {
	Name() string
	Send(ctx context.Context, email Email) error
}

// Dispatcher renders canonical messages and attempts delivery. It holds no
// state between calls beyond its read-only configuration.
type Dispatcher struct {
	transport  Transport
	senderName string
}

func New(transport Transport, senderName string) *Dispatcher {
	return &Dispatcher{
		transport:  transport,
		senderName: senderName,
	}
}

func (d *Dispatcher) TransportName() string {
	return d.transport.Name()
}

// RenderSubject prefixes the original subject with the intent tag.
func (d *Dispatcher) RenderSubject(m *model.CanonicalMessage) string {
	return fmt.Sprintf("[%s] %s", m.IntentTag, m.Subject)
}

// RenderBody produces the structured plain-text body. The field order and
// labels are a compatibility contract for downstream parsing; do not reorder.
func (d *Dispatcher) RenderBody(m *model.CanonicalMessage) string {
	internalTag := "N/A"
	if m.InternalTag != nil {
		internalTag = *m.InternalTag
	}

	sb := strings.Builder{}
	sb.WriteString("--- Structured Message Summary ---\n")
	sb.WriteString(fmt.Sprintf("Intent Tag: %s\n", m.IntentTag))
	sb.WriteString(fmt.Sprintf("Internal Tag: %s\n", internalTag))
	sb.WriteString(fmt.Sprintf("Timestamp: %s UTC\n", m.CreatedAt.UTC().Format(timestampLayout)))
	sb.WriteString(fmt.Sprintf("Sent Via: %s\n", d.senderName))
	sb.WriteString("---------------------------------\n\n")
	sb.WriteString(fmt.Sprintf("Message Body:\n%s\n", m.BodyContent))
	sb.WriteString(fmt.Sprintf("\n\n--\n%s", footerText))
	return sb.String()
}

// Dispatch renders the message and hands it to the configured transport. Any
// transport failure comes back as a *model.DeliveryError carrying the message
// ID; it never panics and never leaves a connection open.
func (d *Dispatcher) Dispatch(ctx context.Context, m *model.CanonicalMessage) error {
	email := Email{
		From:    fmt.Sprintf("%s <%s>", d.senderName, m.SenderEmail),
		To:      m.RecipientEmail,
		Subject: d.RenderSubject(m),
		Body:    d.RenderBody(m),
	}
	if err := d.transport.Send(ctx, email); err != nil {
		return &model.DeliveryError{MessageID: m.ID, Err: err}
	}
	return nil
}
