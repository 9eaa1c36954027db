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

// MarkContractSent transitions ACCEPTED -> CONTRACT_SENT and stores the
// external document reference. Both status axes move in the same write, so
// the contract/request correlation invariant holds at every point in time.
func (s *Store) MarkContractSent(ctx context.Context, requestID string, contract *storage.ContractDetails) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.RequestsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: requestID},
		},
		UpdateExpression: aws.String("SET request_status = :sent, contract_status = :contract_sent, " +
			"document_id = :doc, contract_view_url = :view, buyer_sign_url = :buyer_url, seller_sign_url = :seller_url, " +
			"updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("request_status = :accepted"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sent":          &types.AttributeValueMemberS{Value: string(models.RequestContractSent)},
			":contract_sent": &types.AttributeValueMemberS{Value: string(models.ContractSent)},
			":accepted":      &types.AttributeValueMemberS{Value: string(models.RequestAccepted)},
			":doc":           &types.AttributeValueMemberS{Value: contract.DocumentId},
			":view":          &types.AttributeValueMemberS{Value: contract.ContractViewUrl},
			":buyer_url":     &types.AttributeValueMemberS{Value: contract.BuyerSignUrl},
			":seller_url":    &types.AttributeValueMemberS{Value: contract.SellerSignUrl},
			":now":           nowAV,
			":inc":           &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return storage.ErrStateConflict
		}
		return fmt.Errorf("failed to mark contract sent: %w", err)
	}

	return nil
}

// MarkContractFailed transitions ACCEPTED -> CONTRACT_FAILED/FAILED after a
// gateway error during document creation and releases the lock. Terminal: a
// failed initiation is never retried automatically, since a retry could
// create a duplicate external document.
func (s *Store) MarkContractFailed(ctx context.Context, requestID string) error {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get request for contract failure: %w", err)
	}

	nowAV, err := attributevalue.Marshal(time.Now())
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
					UpdateExpression:    aws.String("SET request_status = :failed, contract_status = :contract_failed, updated_at = :now, version = version + :inc"),
					ConditionExpression: aws.String("request_status = :accepted"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":failed":          &types.AttributeValueMemberS{Value: string(models.RequestContractFailed)},
						":contract_failed": &types.AttributeValueMemberS{Value: string(models.ContractFailed)},
						":accepted":        &types.AttributeValueMemberS{Value: string(models.RequestAccepted)},
						":now":             nowAV,
						":inc":             &types.AttributeValueMemberN{Value: "1"},
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
		return fmt.Errorf("failed to execute contract failure transaction: %w", err)
	}

	return nil
}

// MarkContractDeclined transitions CONTRACT_SENT -> CONTRACT_FAILED/DECLINED
// after a party declined to sign. Records the decline event for dedup and
// releases the lock in the same transaction.
func (s *Store) MarkContractDeclined(ctx context.Context, requestID, reason, eventID string) error {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get request for decline: %w", err)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	eventAV, err := marshalProcessedEvent(eventID, req.DocumentId, now)
	if err != nil {
		return err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.RequestsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: requestID},
					},
					UpdateExpression:    aws.String("SET request_status = :failed, contract_status = :declined, decline_reason = :reason, updated_at = :now, version = version + :inc"),
					ConditionExpression: aws.String("request_status = :contract_sent"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":failed":        &types.AttributeValueMemberS{Value: string(models.RequestContractFailed)},
						":declined":      &types.AttributeValueMemberS{Value: string(models.ContractDeclined)},
						":contract_sent": &types.AttributeValueMemberS{Value: string(models.RequestContractSent)},
						":reason":        &types.AttributeValueMemberS{Value: reason},
						":now":           nowAV,
						":inc":           &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.EventsTableName),
					Item:                eventAV,
					ConditionExpression: aws.String("attribute_not_exists(event_id)"),
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
		if cancelledAt(err, 1) {
			return storage.ErrDuplicateEvent
		}
		if cancelledAt(err, 0) {
			return storage.ErrStateConflict
		}
		return fmt.Errorf("failed to execute decline transaction: %w", err)
	}

	return nil
}
