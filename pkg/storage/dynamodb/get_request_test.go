package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	"github.com/wattmarket/ev-marketplace/pkg/storage/dynamodb/mocks"
)

func TestGetRequest(t *testing.T) {
	req := &models.PurchaseRequest{Id: "req1", ListingId: "listing1", BuyerId: "buyer1", RequestStatus: models.RequestPending}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		reqAV, _ := attributevalue.MarshalMap(req)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)

		result, err := store.GetRequest(context.Background(), "req1")

		assert.NoError(t, err)
		assert.Equal(t, req.Id, result.Id)
		assert.Equal(t, models.RequestPending, result.RequestStatus)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetRequest(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrRequestNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestGetRequestByDocumentID(t *testing.T) {
	req := &models.PurchaseRequest{Id: "req1", DocumentId: "doc1", RequestStatus: models.RequestContractSent}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		reqAV, _ := attributevalue.MarshalMap(req)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return *input.IndexName == documentIDIndex
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{reqAV}}, nil)

		result, err := store.GetRequestByDocumentID(context.Background(), "doc1")

		assert.NoError(t, err)
		assert.Equal(t, "req1", result.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		_, err := store.GetRequestByDocumentID(context.Background(), "unknown")

		assert.ErrorIs(t, err, storage.ErrRequestNotFound)
		mockClient.AssertExpectations(t)
	})
}
