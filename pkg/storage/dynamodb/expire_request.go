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

// MarkExpired transitions a stale request from the given status to EXPIRED
// and releases the lock. The exact-status guard makes concurrent sweeps and
// late user actions race safely: exactly one mutation wins per row, the
// loser gets ErrStateConflict.
func (s *Store) MarkExpired(ctx context.Context, req *models.PurchaseRequest, from models.RequestStatus) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	update := &types.Update{
		TableName: aws.String(s.RequestsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: req.Id},
		},
		UpdateExpression:    aws.String("SET request_status = :expired, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("request_status = :from"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expired": &types.AttributeValueMemberS{Value: string(models.RequestExpired)},
			":from":    &types.AttributeValueMemberS{Value: string(from)},
			":now":     nowAV,
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	}
	// An expired in-flight contract also closes the contract axis.
	if from == models.RequestContractSent {
		update.UpdateExpression = aws.String("SET request_status = :expired, contract_status = :contract_cancelled, updated_at = :now, version = version + :inc")
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
		return fmt.Errorf("failed to execute expiry transaction: %w", err)
	}

	return nil
}
