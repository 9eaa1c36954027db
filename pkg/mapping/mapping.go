package mapping

import (
	"github.com/wattmarket/ev-marketplace/pkg/api"
	"github.com/wattmarket/ev-marketplace/pkg/lifecycle"
	"github.com/wattmarket/ev-marketplace/pkg/models"
)

// ToApiPurchaseRequest converts a domain PurchaseRequest to its API model.
func ToApiPurchaseRequest(req *models.PurchaseRequest) *api.PurchaseRequest {
	return &api.PurchaseRequest{
		Id:              req.Id,
		ListingId:       req.ListingId,
		BuyerId:         req.BuyerId,
		SellerId:        req.SellerId,
		OfferedPrice:    req.OfferedPrice,
		RequestStatus:   api.RequestStatus(req.RequestStatus),
		ContractStatus:  api.ContractStatus(req.ContractStatus),
		DocumentId:      req.DocumentId,
		ContractViewUrl: req.ContractViewUrl,
		BuyerSignUrl:    req.BuyerSignUrl,
		SellerSignUrl:   req.SellerSignUrl,
		BuyerMessage:    req.BuyerMessage,
		SellerMessage:   req.SellerMessage,
		RejectReason:    req.RejectReason,
		DeclineReason:   req.DeclineReason,
		Version:         req.Version,
		CreatedAt:       req.CreatedAt,
		RespondedAt:     req.RespondedAt,
		BuyerSignedAt:   req.BuyerSignedAt,
		SellerSignedAt:  req.SellerSignedAt,
		CompletedAt:     req.CompletedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

// ToCreateInput converts an API NewPurchaseRequest to the lifecycle input.
func ToCreateInput(newReq *api.NewPurchaseRequest) lifecycle.CreateInput {
	return lifecycle.CreateInput{
		ListingId:    newReq.ListingId,
		BuyerId:      newReq.BuyerId,
		OfferedPrice: newReq.OfferedPrice,
		Message:      newReq.Message,
	}
}

// ToApiListing converts a domain Listing to its API model.
func ToApiListing(listing *models.Listing) *api.Listing {
	return &api.Listing{
		Id:          listing.Id,
		SellerId:    listing.SellerId,
		Title:       listing.Title,
		Category:    string(listing.Category),
		AskingPrice: listing.AskingPrice,
		MileageKm:   listing.MileageKm,
		CapacityKwh: listing.CapacityKwh,
		Status:      api.ListingStatus(listing.Status),
		Version:     listing.Version,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
}

// ToDomainNewListing converts an API NewListing to a domain Listing.
// Note: This is a partial mapping; the store assigns id, status and version.
func ToDomainNewListing(newListing *api.NewListing) *models.Listing {
	return &models.Listing{
		SellerId:    newListing.SellerId,
		Title:       newListing.Title,
		Category:    models.ListingCategory(newListing.Category),
		AskingPrice: newListing.AskingPrice,
		MileageKm:   newListing.MileageKm,
		CapacityKwh: newListing.CapacityKwh,
	}
}
