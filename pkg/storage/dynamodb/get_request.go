package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

const documentIDIndex = "document_id-index"

// GetRequest retrieves a purchase request from DynamoDB by its ID.
func (s *Store) GetRequest(ctx context.Context, requestID string) (*models.PurchaseRequest, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": requestID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.RequestsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase request from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrRequestNotFound
	}

	var req models.PurchaseRequest
	if err := attributevalue.UnmarshalMap(result.Item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal purchase request: %w", err)
	}

	return &req, nil
}

// GetRequestByDocumentID looks up the purchase request referencing an
// external contract document via the document_id GSI.
func (s *Store) GetRequestByDocumentID(ctx context.Context, documentID string) (*models.PurchaseRequest, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.RequestsTableName),
		IndexName:              aws.String(documentIDIndex),
		KeyConditionExpression: aws.String("document_id = :doc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":doc": &types.AttributeValueMemberS{Value: documentID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query request by document ID: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrRequestNotFound
	}

	var req models.PurchaseRequest
	if err := attributevalue.UnmarshalMap(result.Items[0], &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal purchase request: %w", err)
	}

	return &req, nil
}
