package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Dispatcher delivers lifecycle notifications to the parties of a request.
// Delivery is fire-and-forget: callers log a returned error and move on, it
// never blocks or fails a state transition.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// SQSAPI captures the subset of the SQS client used by the dispatcher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSDispatcher implements the Dispatcher interface by enqueueing
// notifications for asynchronous delivery.
type SQSDispatcher struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSDispatcher creates a new SQSDispatcher.
func NewSQSDispatcher(client SQSAPI, queueURL string) *SQSDispatcher {
	return &SQSDispatcher{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Dispatcher = (*SQSDispatcher)(nil)

// Dispatch sends the notification to the delivery queue.
func (d *SQSDispatcher) Dispatch(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification for SQS: %w", err)
	}

	_, err = d.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(d.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send notification to SQS: %w", err)
	}

	return nil
}

// NoOpDispatcher discards notifications. Useful in tests and local runs.
type NoOpDispatcher struct{}

// Dispatch does nothing.
func (d *NoOpDispatcher) Dispatch(ctx context.Context, n Notification) error {
	return nil
}
