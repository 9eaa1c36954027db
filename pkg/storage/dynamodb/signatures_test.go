package dynamodb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	"github.com/wattmarket/ev-marketplace/pkg/storage/dynamodb/mocks"
)

func TestRecordSignature(t *testing.T) {
	upd := &storage.SignatureUpdate{
		RequestId:      "req1",
		DocumentId:     "doc1",
		Signer:         models.SignerBuyer,
		SignedAt:       time.Now(),
		ContractStatus: models.ContractBuyerSigned,
		RequestStatus:  models.RequestContractSent,
		EventId:        models.EventId("doc1", models.SignerBuyer, "signed"),
		Version:        4,
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests", EventsTableName: "events"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			update := input.TransactItems[0].Update
			if update == nil || *update.TableName != "requests" {
				return false
			}
			// The write must be pinned to the version the caller read.
			if !strings.Contains(*update.ConditionExpression, "version = :version") {
				return false
			}
			version, ok := update.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN)
			return ok && version.Value == "4" &&
				input.TransactItems[1].Put != nil &&
				*input.TransactItems[1].Put.TableName == "events"
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.RecordSignature(context.Background(), upd)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Event", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests", EventsTableName: "events"}

		// The event dedup put failing takes precedence over the request
		// guard; the update also fails because the signature already landed.
		cancellationReasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: cancellationReasons})

		err := store.RecordSignature(context.Background(), upd)

		assert.ErrorIs(t, err, storage.ErrDuplicateEvent)
		mockClient.AssertExpectations(t)
	})

	t.Run("State Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests", EventsTableName: "events"}

		cancellationReasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: cancellationReasons})

		err := store.RecordSignature(context.Background(), upd)

		assert.ErrorIs(t, err, storage.ErrStateConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, RequestsTableName: "requests", EventsTableName: "events"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		err := store.RecordSignature(context.Background(), upd)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute signature transaction")
		mockClient.AssertExpectations(t)
	})
}
