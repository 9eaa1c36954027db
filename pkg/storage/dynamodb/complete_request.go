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

// MarkCompleted finalizes a dual-signed request: CONTRACT_SIGNED ->
// COMPLETED with completed_at set, the listing marked SOLD, and the
// active-negotiation lock released, all in one transaction. The listing
// update is version-guarded so a concurrent catalog edit cannot be lost.
func (s *Store) MarkCompleted(ctx context.Context, req *models.PurchaseRequest) error {
	listing, err := s.GetListing(ctx, req.ListingId)
	if err != nil {
		return fmt.Errorf("failed to get listing for completion: %w", err)
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
						"id": &types.AttributeValueMemberS{Value: req.Id},
					},
					UpdateExpression:    aws.String("SET request_status = :completed, contract_status = :contract_completed, completed_at = :now, updated_at = :now, version = version + :inc"),
					ConditionExpression: aws.String("request_status = :contract_signed"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed":          &types.AttributeValueMemberS{Value: string(models.RequestCompleted)},
						":contract_completed": &types.AttributeValueMemberS{Value: string(models.ContractCompleted)},
						":contract_signed":    &types.AttributeValueMemberS{Value: string(models.RequestContractSigned)},
						":now":                nowAV,
						":inc":                &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(s.ListingsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: req.ListingId},
					},
					UpdateExpression:    aws.String("SET #status = :sold, updated_at = :now, version = version + :inc"),
					ConditionExpression: aws.String("#status = :active AND version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":sold":    &types.AttributeValueMemberS{Value: string(models.ListingSold)},
						":active":  &types.AttributeValueMemberS{Value: string(models.ListingActive)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", listing.Version)},
						":now":     nowAV,
						":inc":     &types.AttributeValueMemberN{Value: "1"},
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
		if cancelledAt(err, 0) || cancelledAt(err, 1) {
			return storage.ErrStateConflict
		}
		return fmt.Errorf("failed to execute completion transaction: %w", err)
	}

	return nil
}
