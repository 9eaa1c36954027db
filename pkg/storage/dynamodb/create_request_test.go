package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	"github.com/wattmarket/ev-marketplace/pkg/storage/dynamodb/mocks"
)

func TestCreateRequest(t *testing.T) {
	newRequest := func() *models.PurchaseRequest {
		return &models.PurchaseRequest{
			ListingId:    "listing1",
			BuyerId:      "buyer1",
			SellerId:     "seller1",
			OfferedPrice: 2500000,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2 &&
				input.TransactItems[0].Put != nil &&
				input.TransactItems[1].Put != nil
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		result, err := store.CreateRequest(context.Background(), newRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, result.Id)
		assert.Equal(t, models.RequestPending, result.RequestStatus)
		assert.Equal(t, int64(1), result.Version)
		assert.False(t, result.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Active Request Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		// The second transact item is the lock row put; its conditional
		// failure means another negotiation for this pair is in flight.
		cancellationReasons := []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: cancellationReasons})

		_, err := store.CreateRequest(context.Background(), newRequest())

		assert.ErrorIs(t, err, storage.ErrActiveRequestExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		_, err := store.CreateRequest(context.Background(), newRequest())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute create transaction")
		mockClient.AssertExpectations(t)
	})
}
