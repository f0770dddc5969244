package transport

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the slice of the SES client the email transport uses
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESEmailTransport delivers email through Amazon SES
type SESEmailTransport struct {
	client    SESAPI
	fromEmail string
}

// NewSESEmailTransport loads the default AWS config for the region and
// builds an SES-backed email transport
func NewSESEmailTransport(ctx context.Context, region, fromEmail string) (*SESEmailTransport, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESEmailTransport{
		client:    ses.NewFromConfig(cfg),
		fromEmail: fromEmail,
	}, nil
}

// NewSESEmailTransportWithClient builds a transport around an existing
// client, used in tests
func NewSESEmailTransportWithClient(client SESAPI, fromEmail string) *SESEmailTransport {
	return &SESEmailTransport{client: client, fromEmail: fromEmail}
}

// Send delivers one email and returns the SES message ID
func (t *SESEmailTransport) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	out, err := t.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
		Source: aws.String(t.fromEmail),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
