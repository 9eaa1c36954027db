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

// MarkCancelled transitions a request to CANCELLED and releases the lock.
// The guard admits every cancellable status in one expression, so the caller
// does not need to know which of them the row is currently in. If a contract
// document exists, its external cancellation is the coordinator's problem,
// not the store's.
func (s *Store) MarkCancelled(ctx context.Context, req *models.PurchaseRequest) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	update := &types.Update{
		TableName: aws.String(s.RequestsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: req.Id},
		},
		UpdateExpression:    aws.String("SET request_status = :cancelled, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("request_status IN (:pending, :accepted, :contract_sent)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled":     &types.AttributeValueMemberS{Value: string(models.RequestCancelled)},
			":pending":       &types.AttributeValueMemberS{Value: string(models.RequestPending)},
			":accepted":      &types.AttributeValueMemberS{Value: string(models.RequestAccepted)},
			":contract_sent": &types.AttributeValueMemberS{Value: string(models.RequestContractSent)},
			":now":           nowAV,
			":inc":           &types.AttributeValueMemberN{Value: "1"},
		},
	}
	// A cancelled in-flight contract also closes the contract axis.
	if req.DocumentId != "" {
		update.UpdateExpression = aws.String("SET request_status = :cancelled, contract_status = :contract_cancelled, updated_at = :now, version = version + :inc")
		update.ExpressionAttributeValues[":contract_cancelled"] = &types.AttributeValueMemberS{Value: string(models.ContractCancelled)}
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
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
		return fmt.Errorf("failed to execute cancellation transaction: %w", err)
	}

	return nil
}
