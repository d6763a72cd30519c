package pub

import (
	"context"
	"empdir/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/goccy/go-json"
)

// SNSPublisher is the subset of *sns.Client used here.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsPub struct {
	cli SNSPublisher
	arn string
}

// NewSNS publishes every notification as JSON to the topic arn.
func NewSNS(c SNSPublisher, arn string) *snsPub { return &snsPub{cli: c, arn: arn} }

func (s *snsPub) Notify(ctx context.Context, n types.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = s.cli.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.arn),
		Subject:  aws.String(n.Title),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"content-type": {DataType: aws.String("String"), StringValue: aws.String("application/json")},
			"severity":     {DataType: aws.String("String"), StringValue: aws.String(string(n.Severity))},
		},
	})
	return err
}
