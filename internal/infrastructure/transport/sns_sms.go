package transport

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the slice of the SNS client the SMS transport uses
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSMSTransport delivers SMS through Amazon SNS direct publish
type SNSSMSTransport struct {
	client SNSAPI
}

// NewSNSSMSTransport loads the default AWS config for the region and builds
// an SNS-backed SMS transport
func NewSNSSMSTransport(ctx context.Context, region string) (*SNSSMSTransport, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSSMSTransport{client: sns.NewFromConfig(cfg)}, nil
}

// NewSNSSMSTransportWithClient builds a transport around an existing client,
// used in tests
func NewSNSSMSTransportWithClient(client SNSAPI) *SNSSMSTransport {
	return &SNSSMSTransport{client: client}
}

// Send publishes one SMS and returns the SNS message ID
func (t *SNSSMSTransport) Send(ctx context.Context, to, body string) (string, error) {
	out, err := t.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(body),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
