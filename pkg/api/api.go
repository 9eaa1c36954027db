// Package api holds the wire models of the HTTP surface. They are kept
// separate from the domain models so storage concerns never leak into
// responses.
package api

import "time"

// RequestStatus is the API representation of a purchase request status.
type RequestStatus string

// ContractStatus is the API representation of a contract status.
type ContractStatus string

// ListingStatus is the API representation of a listing status.
type ListingStatus string

// NewPurchaseRequest is the payload for opening a purchase request.
type NewPurchaseRequest struct {
	ListingId    string `json:"listing_id"`
	BuyerId      string `json:"buyer_id"`
	OfferedPrice int64  `json:"offered_price"`
	Message      string `json:"message,omitempty"`
}

// RespondToRequest is the seller's decision payload.
type RespondToRequest struct {
	SellerId     string `json:"seller_id"`
	Accept       bool   `json:"accept"`
	Message      string `json:"message,omitempty"`
	RejectReason string `json:"reject_reason,omitempty"`
}

// CancelPurchaseRequest identifies the party withdrawing a request.
type CancelPurchaseRequest struct {
	AccountId string `json:"account_id"`
}

// PurchaseRequest is the API representation of a purchase request.
type PurchaseRequest struct {
	Id              string         `json:"id"`
	ListingId       string         `json:"listing_id"`
	BuyerId         string         `json:"buyer_id"`
	SellerId        string         `json:"seller_id"`
	OfferedPrice    int64          `json:"offered_price"`
	RequestStatus   RequestStatus  `json:"request_status"`
	ContractStatus  ContractStatus `json:"contract_status,omitempty"`
	DocumentId      string         `json:"document_id,omitempty"`
	ContractViewUrl string         `json:"contract_view_url,omitempty"`
	BuyerSignUrl    string         `json:"buyer_sign_url,omitempty"`
	SellerSignUrl   string         `json:"seller_sign_url,omitempty"`
	BuyerMessage    string         `json:"buyer_message,omitempty"`
	SellerMessage   string         `json:"seller_message,omitempty"`
	RejectReason    string         `json:"reject_reason,omitempty"`
	DeclineReason   string         `json:"decline_reason,omitempty"`
	Version         int64          `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
	RespondedAt     *time.Time     `json:"responded_at,omitempty"`
	BuyerSignedAt   *time.Time     `json:"buyer_signed_at,omitempty"`
	SellerSignedAt  *time.Time     `json:"seller_signed_at,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewListing is the payload for creating a listing. Prices are integer cents.
type NewListing struct {
	SellerId    string `json:"seller_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	AskingPrice int64  `json:"asking_price"`
	MileageKm   *int32 `json:"mileage_km,omitempty"`
	CapacityKwh *int32 `json:"capacity_kwh,omitempty"`
}

// Listing is the API representation of a marketplace listing.
type Listing struct {
	Id          string        `json:"id"`
	SellerId    string        `json:"seller_id"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	AskingPrice int64         `json:"asking_price"`
	MileageKm   *int32        `json:"mileage_km,omitempty"`
	CapacityKwh *int32        `json:"capacity_kwh,omitempty"`
	Status      ListingStatus `json:"status"`
	Version     int64         `json:"version"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
