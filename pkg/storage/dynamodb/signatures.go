package dynamodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// signedAtAttribute maps a signer role to its timestamp attribute.
func signedAtAttribute(signer models.SignerRole) string {
	if signer == models.SignerBuyer {
		return "buyer_signed_at"
	}
	return "seller_signed_at"
}

// RecordSignature applies a single gateway signature event. The write is
// guarded in one transaction: the request must still be in CONTRACT_SENT at
// the exact version the caller read, the signer's timestamp must not be set
// yet, and the event id must not have been recorded before. The version
// compare is what serializes two concurrent callbacks: both may read the
// unsigned row, but only one write can land, and the loser re-reads. Without
// it both partial updates would succeed and the dual-signed transition would
// never be written.
func (s *Store) RecordSignature(ctx context.Context, upd *storage.SignatureUpdate) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	signedAtAV, err := attributevalue.Marshal(upd.SignedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal signature timestamp: %w", err)
	}

	eventAV, err := marshalProcessedEvent(upd.EventId, upd.DocumentId, now)
	if err != nil {
		return err
	}

	signedAttr := signedAtAttribute(upd.Signer)

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.RequestsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: upd.RequestId},
					},
					UpdateExpression: aws.String(fmt.Sprintf(
						"SET %s = :signed_at, contract_status = :contract_status, request_status = :request_status, updated_at = :now, version = version + :inc",
						signedAttr)),
					ConditionExpression: aws.String(fmt.Sprintf(
						"request_status = :contract_sent AND attribute_not_exists(%s) AND version = :version", signedAttr)),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":signed_at":       signedAtAV,
						":contract_status": &types.AttributeValueMemberS{Value: string(upd.ContractStatus)},
						":request_status":  &types.AttributeValueMemberS{Value: string(upd.RequestStatus)},
						":contract_sent":   &types.AttributeValueMemberS{Value: string(models.RequestContractSent)},
						":version":         &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", upd.Version)},
						":now":             nowAV,
						":inc":             &types.AttributeValueMemberN{Value: "1"},
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
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if cancelledAt(err, 1) {
			return storage.ErrDuplicateEvent
		}
		if cancelledAt(err, 0) {
			return storage.ErrStateConflict
		}
		return fmt.Errorf("failed to execute signature transaction: %w", err)
	}

	return nil
}

// marshalProcessedEvent builds the dedup row for a webhook event. Rows carry
// a TTL well past any provider redelivery window.
func marshalProcessedEvent(eventID, documentID string, now time.Time) (map[string]types.AttributeValue, error) {
	event := models.ProcessedEvent{
		EventId:    eventID,
		DocumentId: documentID,
		ReceivedAt: now,
		TTL:        now.Add(30 * 24 * time.Hour).Unix(),
	}
	if parts := strings.Split(eventID, "#"); len(parts) == 3 {
		event.Signer = models.SignerRole(parts[1])
		event.Event = parts[2]
	}

	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal processed event: %w", err)
	}
	return eventAV, nil
}
