package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// CreateRequest atomically creates a new purchase request in PENDING and
// claims the (listing, buyer) active-negotiation lock. The lock row put is
// guarded with attribute_not_exists, which is what closes the race between
// two concurrent creates for the same pair.
func (s *Store) CreateRequest(ctx context.Context, req *models.PurchaseRequest) (*models.PurchaseRequest, error) {
	now := time.Now()
	req.Id = uuid.New().String()
	req.RequestStatus = models.RequestPending
	req.Version = 1
	req.CreatedAt = now
	req.UpdatedAt = now

	slog.Log(ctx, slog.LevelDebug, "creating purchase request", "request", req)

	reqAV, err := attributevalue.MarshalMap(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal purchase request: %w", err)
	}

	lock := models.ActiveLock{
		Id:        models.ActiveLockId(req.ListingId, req.BuyerId),
		RequestId: req.Id,
		CreatedAt: now,
	}
	lockAV, err := attributevalue.MarshalMap(lock)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal negotiation lock: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.RequestsTableName),
					Item:                reqAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.RequestsTableName),
					Item:                lockAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if cancelledAt(err, 1) {
			return nil, storage.ErrActiveRequestExists
		}
		return nil, fmt.Errorf("failed to execute create transaction: %w", err)
	}

	return req, nil
}
