package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// ConnectionLookup resolves the live WebSocket connections of an account.
type ConnectionLookup interface {
	GetConnectionsByAccountID(ctx context.Context, accountID string) ([]string, error)
}

// ConnectionRemover drops a stale connection record.
type ConnectionRemover interface {
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher pushes a delivered notification to the addressed account's open
// WebSocket connections through the API Gateway management API.
type Publisher struct {
	store       ConnectionLookup
	connRemover ConnectionRemover
	apiGwClient *apigatewaymanagementapi.Client
}

// NewPublisher creates a new Publisher.
func NewPublisher(store ConnectionLookup, connRemover ConnectionRemover, apiEndpoint string) (*Publisher, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return &Publisher{
		store:       store,
		connRemover: connRemover,
		apiGwClient: apiGwClient,
	}, nil
}

// Publish sends the notification to every open connection of its account.
// Stale connections are pruned as they are discovered.
func (p *Publisher) Publish(ctx context.Context, n Notification) error {
	connectionIDs, err := p.store.GetConnectionsByAccountID(ctx, n.AccountId)
	if err != nil {
		return fmt.Errorf("failed to get connections for account: %w", err)
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err != nil {
			var goneErr *apigwtypes.GoneException
			if errors.As(err, &goneErr) {
				slog.Info("stale connection found, deleting", "connectionId", connectionID)
				if err := p.connRemover.RemoveConnection(ctx, connectionID); err != nil {
					slog.Error("failed to delete stale connection", "error", err)
				}
			} else {
				slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
			}
		}
	}

	return nil
}
