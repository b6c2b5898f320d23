// Package mail delivers activation messages for newly registered users.
// Delivery is decoupled from the registration write path through a small
// asynchronous dispatcher, so a slow or failing SMTP server never blocks
// or fails a registration.
package mail

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Notifier sends an activation message to an email address. The activation
// URL already contains the opaque activation link.
type Notifier interface {
	SendActivationMail(ctx context.Context, email, activationURL string) error
}

// SMTPNotifier delivers activation mail over SMTP using go-mail.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPNotifier constructs an SMTP-backed notifier.
func NewSMTPNotifier(host string, port int, username, password, from string) (*SMTPNotifier, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if from == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}, nil
}

// SendActivationMail sends a plain-text activation message.
func (n *SMTPNotifier) SendActivationMail(ctx context.Context, email, activationURL string) error {
	msg := mail.NewMsg()

	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject("Account activation on Postwall")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("To activate your account, follow the link:\n\n%s\n", activationURL))

	opts := []mail.Option{
		mail.WithPort(n.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.username != "" && n.password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.username),
			mail.WithPassword(n.password),
		)
	}

	client, err := mail.NewClient(n.host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
