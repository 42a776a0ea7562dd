package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepetra/petra/internal/metrics"
)

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	m := NewSESWithClient(fake, "Petra <noreply@thepetra.in>")
	before := testutil.ToFloat64(metrics.EmailsSent.WithLabelValues("waitlist-admin", "sent"))

	err := m.Send(context.Background(), Message{
		To:      []string{"admin@thepetra.in"},
		ReplyTo: "anu@example.com",
		Subject: "New Waitlist Signup",
		HTML:    "<p>hi</p>",
		Kind:    "waitlist-admin",
	})
	require.NoError(t, err)
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "Petra <noreply@thepetra.in>", aws.ToString(in.Source))
	assert.Equal(t, []string{"admin@thepetra.in"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"anu@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, "New Waitlist Signup", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(in.Message.Body.Html.Data))
	assert.Nil(t, in.Message.Body.Text)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailsSent.WithLabelValues("waitlist-admin", "sent")))
}

func TestSESMailer_TextOnly(t *testing.T) {
	fake := &fakeSES{}
	require.NoError(t, NewSESWithClient(fake, "a@b.in").Send(context.Background(), Message{To: []string{"x@y.in"}, Text: "plain"}))

	body := fake.inputs[0].Message.Body
	assert.Nil(t, body.Html)
	assert.Equal(t, "plain", aws.ToString(body.Text.Data))
	assert.Nil(t, fake.inputs[0].ReplyToAddresses)
}

func TestSESMailer_Errors(t *testing.T) {
	m := NewSESWithClient(&fakeSES{err: errors.New("throttled")}, "a@b.in")

	err := m.Send(context.Background(), Message{To: []string{"x@y.in"}, Subject: "Hello"})
	assert.ErrorContains(t, err, "throttled")

	assert.ErrorIs(t, m.Send(context.Background(), Message{}), ErrNoRecipient)
}
