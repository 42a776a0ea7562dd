// Package notify delivers outbound notifications: transactional email through
// Amazon SES and form rows to Google Sheets webhooks.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/thepetra/petra/internal/config"
	"github.com/thepetra/petra/internal/metrics"
)

// ErrNoRecipient is returned for a message without a To address.
var ErrNoRecipient = errors.New("message has no recipient")

// Message is a single email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	// Kind labels the message in metrics, e.g. "waitlist-admin".
	Kind string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SESAPI is the subset of the SES client used by SESMailer.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer implements Mailer on Amazon SES.
type SESMailer struct {
	client SESAPI
	from   string
}

// NewSES creates a mailer using the default AWS credential chain.
func NewSES(ctx context.Context, cfg config.EmailConfig) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESWithClient(ses.NewFromConfig(awsCfg), cfg.From), nil
}

// NewSESWithClient wraps an existing SES client.
func NewSESWithClient(client SESAPI, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

// Send implements Mailer.
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}

	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}
	if msg.Text != "" || msg.HTML == "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
		Source: aws.String(m.from),
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	kind := msg.Kind
	if kind == "" {
		kind = "other"
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("failed to send %q email: %w", msg.Subject, err)
	}
	metrics.EmailsSent.WithLabelValues(kind, "sent").Inc()
	return nil
}
