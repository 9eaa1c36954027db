package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// MarkAccepted transitions a request from PENDING to ACCEPTED. The status
// guard makes a concurrent expiry sweep or cancellation lose or win cleanly:
// whichever write lands first, the other observes ErrStateConflict.
func (s *Store) MarkAccepted(ctx context.Context, requestID, sellerMessage string) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.RequestsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: requestID},
		},
		UpdateExpression:    aws.String("SET request_status = :accepted, seller_message = :msg, responded_at = :now, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("request_status = :pending"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accepted": &types.AttributeValueMemberS{Value: string(models.RequestAccepted)},
			":pending":  &types.AttributeValueMemberS{Value: string(models.RequestPending)},
			":msg":      &types.AttributeValueMemberS{Value: sellerMessage},
			":now":      nowAV,
			":inc":      &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return storage.ErrStateConflict
		}
		return fmt.Errorf("failed to mark request accepted: %w", err)
	}

	return nil
}

// MarkRejected transitions a request from PENDING to REJECTED, records the
// reason and releases the active-negotiation lock in the same transaction.
func (s *Store) MarkRejected(ctx context.Context, requestID, rejectReason string) error {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get request for rejection: %w", err)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.RequestsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: requestID},
					},
					UpdateExpression:    aws.String("SET request_status = :rejected, reject_reason = :reason, responded_at = :now, updated_at = :now, version = version + :inc"),
					ConditionExpression: aws.String("request_status = :pending"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rejected": &types.AttributeValueMemberS{Value: string(models.RequestRejected)},
						":pending":  &types.AttributeValueMemberS{Value: string(models.RequestPending)},
						":reason":   &types.AttributeValueMemberS{Value: rejectReason},
						":now":      nowAV,
						":inc":      &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				Delete: &types.Delete{
					TableName: aws.String(s.RequestsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: models.ActiveLockId(req.ListingId, req.BuyerId)},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if cancelledAt(err, 0) {
			return storage.ErrStateConflict
		}
		return fmt.Errorf("failed to execute rejection transaction: %w", err)
	}

	return nil
}
