package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// snsAPI is the subset of the SNS client the gateway needs. *sns.Client
// satisfies it; tests substitute a stub.
type snsAPI interface {
	CreateTopic(ctx context.Context, params *sns.CreateTopicInput, optFns ...func(*sns.Options)) (*sns.CreateTopicOutput, error)
	ListTopics(ctx context.Context, params *sns.ListTopicsInput, optFns ...func(*sns.Options)) (*sns.ListTopicsOutput, error)
	ListSubscriptionsByTopic(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error)
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes run notifications to a single topic.
type SNSClient struct {
	api      snsAPI
	topicARN string
}

// NewSNSClient builds the gateway on the AWS default credential chain.
// region may be empty, in which case the chain decides.
func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SNSClient{api: sns.NewFromConfig(cfg)}, nil
}

// EnsureTopic looks the topic up by name and creates it when missing.
// The resolved ARN is retained for Publish. Idempotent.
func (c *SNSClient) EnsureTopic(ctx context.Context, name string) (string, error) {
	var nextToken *string
	for {
		out, err := c.api.ListTopics(ctx, &sns.ListTopicsInput{NextToken: nextToken})
		if err != nil {
			return "", fmt.Errorf("failed to list topics: %w", err)
		}
		for _, topic := range out.Topics {
			if topic.TopicArn != nil && strings.HasSuffix(*topic.TopicArn, ":"+name) {
				slog.InfoContext(ctx, "topic already exists", "topic_arn", *topic.TopicArn)
				c.topicARN = *topic.TopicArn
				return c.topicARN, nil
			}
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	created, err := c.api.CreateTopic(ctx, &sns.CreateTopicInput{Name: aws.String(name)})
	if err != nil {
		return "", fmt.Errorf("failed to create topic %s: %w", name, err)
	}
	slog.InfoContext(ctx, "topic created", "topic_arn", aws.ToString(created.TopicArn))
	c.topicARN = aws.ToString(created.TopicArn)
	return c.topicARN, nil
}

// SubscribeEmail subscribes the address to the topic unless it already is.
// A pending-confirmation subscription counts as subscribed, so repeated
// calls never produce duplicate deliveries.
func (c *SNSClient) SubscribeEmail(ctx context.Context, email string) error {
	if c.topicARN == "" {
		return fmt.Errorf("no topic resolved, call EnsureTopic first")
	}

	var nextToken *string
	for {
		out, err := c.api.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{
			TopicArn:  aws.String(c.topicARN),
			NextToken: nextToken,
		})
		if err != nil {
			return fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range out.Subscriptions {
			if aws.ToString(sub.Protocol) != "email" || aws.ToString(sub.Endpoint) != email {
				continue
			}
			if strings.HasSuffix(aws.ToString(sub.SubscriptionArn), "PendingConfirmation") {
				slog.InfoContext(ctx, "subscription pending confirmation", "email", email)
			} else {
				slog.InfoContext(ctx, "email already subscribed", "email", email)
			}
			return nil
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	out, err := c.api.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: aws.String(c.topicARN),
		Protocol: aws.String("email"),
		Endpoint: aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", email, err)
	}
	slog.InfoContext(ctx, "subscription initiated", "email", email, "subscription_arn", aws.ToString(out.SubscriptionArn))
	return nil
}

// Publish sends one message to the resolved topic.
func (c *SNSClient) Publish(ctx context.Context, subject, message string) error {
	if c.topicARN == "" {
		return fmt.Errorf("no topic resolved, call EnsureTopic first")
	}
	_, err := c.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %q: %w", subject, err)
	}
	return nil
}
