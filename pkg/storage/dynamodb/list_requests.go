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
)

const (
	buyerIDIndex       = "buyer_id-index"
	sellerIDIndex      = "seller_id-index"
	requestStatusIndex = "request_status-created_at-index"
)

// ListRequestsByAccountID retrieves all requests in which the account is
// buyer or seller. Two GSI queries, merged; the id key prevents overlap
// since an account is never both parties of one request.
func (s *Store) ListRequestsByAccountID(ctx context.Context, accountID string) ([]models.PurchaseRequest, error) {
	asBuyer, err := s.queryRequestsByIndex(ctx, buyerIDIndex, "buyer_id", accountID)
	if err != nil {
		return nil, err
	}
	asSeller, err := s.queryRequestsByIndex(ctx, sellerIDIndex, "seller_id", accountID)
	if err != nil {
		return nil, err
	}
	return append(asBuyer, asSeller...), nil
}

func (s *Store) queryRequestsByIndex(ctx context.Context, index, attr, value string) ([]models.PurchaseRequest, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.RequestsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :v", attr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query requests by %s: %w", attr, err)
	}

	var requests []models.PurchaseRequest
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal purchase requests: %w", err)
	}
	return requests, nil
}

// ListExpiryCandidates retrieves requests that entered the given status
// before the cutoff. For PENDING the age is measured from creation; for
// CONTRACT_SENT from the seller's response, when signing started.
func (s *Store) ListExpiryCandidates(ctx context.Context, status models.RequestStatus, cutoff time.Time) ([]models.PurchaseRequest, error) {
	cutoffStr, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.RequestsTableName),
		IndexName:              aws.String(requestStatusIndex),
		KeyConditionExpression: aws.String("request_status = :status"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffStr)},
		},
	}
	if status == models.RequestContractSent {
		input.FilterExpression = aws.String("responded_at < :cutoff")
	} else {
		input.FilterExpression = aws.String("created_at < :cutoff")
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for expiry candidates: %w", err)
	}

	var requests []models.PurchaseRequest
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expiry candidates: %w", err)
	}

	return requests, nil
}
