package dynamodb

import (
	"context"
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

func TestMarkExpired(t *testing.T) {
	req := &models.PurchaseRequest{
		Id:        "req1",
		ListingId: "listing1",
		BuyerId:   "buyer1",
	}

	t.Run("Expires Pending Request", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			update := input.TransactItems[0].Update
			if update == nil || input.TransactItems[1].Delete == nil {
				return false
			}
			// A pending expiry must not touch the contract axis.
			_, touchesContract := update.ExpressionAttributeValues[":contract_cancelled"]
			return !touchesContract
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.MarkExpired(context.Background(), req, models.RequestPending)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Expires Contract Sent Request", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			update := input.TransactItems[0].Update
			if update == nil {
				return false
			}
			_, touchesContract := update.ExpressionAttributeValues[":contract_cancelled"]
			return touchesContract
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.MarkExpired(context.Background(), req, models.RequestContractSent)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests"}

		cancellationReasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: cancellationReasons})

		err := store.MarkExpired(context.Background(), req, models.RequestPending)

		assert.ErrorIs(t, err, storage.ErrStateConflict)
		mockClient.AssertExpectations(t)
	})
}
