package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

const listingStatusIndex = "status-created_at-index"

// GetListing retrieves a listing from DynamoDB by its ID.
func (s *Store) GetListing(ctx context.Context, listingID string) (*models.Listing, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": listingID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.ListingsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get listing from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrListingNotFound
	}

	var listing models.Listing
	if err := attributevalue.UnmarshalMap(result.Item, &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	return &listing, nil
}

// CreateListing creates a new listing in ACTIVE.
func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	now := time.Now()
	listing.Id = uuid.New().String()
	listing.Status = models.ListingActive
	listing.Version = 1
	listing.CreatedAt = now
	listing.UpdatedAt = now

	item, err := attributevalue.MarshalMap(listing)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.ListingsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, storage.ErrListingExists
		}
		return nil, fmt.Errorf("failed to put listing: %w", err)
	}

	return listing, nil
}

// ListListings retrieves all listings in the given status, newest first.
func (s *Store) ListListings(ctx context.Context, status models.ListingStatus) ([]models.Listing, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.ListingsTableName),
		IndexName:              aws.String(listingStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	var listings []models.Listing
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &listings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings: %w", err)
	}

	return listings, nil
}

// IsPurchasable reports whether the listing can accept new purchase requests.
func (s *Store) IsPurchasable(ctx context.Context, listingID string) (bool, error) {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return false, err
	}
	return listing.Purchasable(), nil
}
