package storage

import (
	"context"

	"github.com/wattmarket/ev-marketplace/pkg/models"
)

// ListingStore defines the interface for the catalog side of the marketplace.
// The sold transition is not exposed here: a listing becomes SOLD only inside
// RequestManager.MarkCompleted, atomically with the request completing.
type ListingStore interface {
	// GetListing retrieves a listing by its ID.
	GetListing(ctx context.Context, listingID string) (*models.Listing, error)

	// CreateListing creates a new listing in ACTIVE.
	CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)

	// ListListings retrieves all listings in the given status.
	ListListings(ctx context.Context, status models.ListingStatus) ([]models.Listing, error)

	// IsPurchasable reports whether the listing can accept new purchase requests.
	IsPurchasable(ctx context.Context, listingID string) (bool, error)
}
