package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/thepetra/petra/internal/config"
	"github.com/thepetra/petra/internal/metrics"
)

// Texter sends SMS messages.
type Texter interface {
	Text(ctx context.Context, phone, body string) error
}

// SNSAPI is the subset of the SNS client used by SNSTexter.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSTexter implements Texter on Amazon SNS direct publishing.
type SNSTexter struct {
	client SNSAPI
}

// NewSNS creates a texter using the default AWS credential chain.
func NewSNS(ctx context.Context, cfg config.EmailConfig) (*SNSTexter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSNSWithClient(sns.NewFromConfig(awsCfg)), nil
}

// NewSNSWithClient wraps an existing SNS client.
func NewSNSWithClient(client SNSAPI) *SNSTexter {
	return &SNSTexter{client: client}
}

// Text implements Texter. Ten-digit numbers are assumed to be Indian mobiles.
func (s *SNSTexter) Text(ctx context.Context, phone, body string) error {
	number, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	_, err = s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(number),
		Message:     aws.String(body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues("sms", "error").Inc()
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	metrics.EmailsSent.WithLabelValues("sms", "sent").Inc()
	return nil
}

// NormalizePhone converts a phone number to E.164.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case strings.HasPrefix(strings.TrimSpace(phone), "+") && len(d) >= 8 && len(d) <= 15:
		return "+" + d, nil
	case len(d) == 10:
		return "+91" + d, nil
	case len(d) == 12 && strings.HasPrefix(d, "91"):
		return "+" + d, nil
	case len(d) == 11 && strings.HasPrefix(d, "0"):
		return "+91" + d[1:], nil
	}
	return "", fmt.Errorf("invalid phone number %q", phone)
}
