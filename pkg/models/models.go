package models

import (
	"fmt"
	"time"
)

// RequestStatus is the primary lifecycle axis of a purchase request.
type RequestStatus string

const (
	RequestPending        RequestStatus = "PENDING"
	RequestAccepted       RequestStatus = "ACCEPTED"
	RequestRejected       RequestStatus = "REJECTED"
	RequestContractSent   RequestStatus = "CONTRACT_SENT"
	RequestContractSigned RequestStatus = "CONTRACT_SIGNED"
	RequestCompleted      RequestStatus = "COMPLETED"
	RequestCancelled      RequestStatus = "CANCELLED"
	RequestExpired        RequestStatus = "EXPIRED"
	RequestContractFailed RequestStatus = "CONTRACT_FAILED"
)

// Terminal reports whether no further transition is permitted from s.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestRejected, RequestCompleted, RequestCancelled, RequestExpired, RequestContractFailed:
		return true
	}
	return false
}

// ContractStatus is the secondary axis, populated only once a contract
// document exists. It is empty before acceptance.
type ContractStatus string

const (
	ContractPending      ContractStatus = "PENDING"
	ContractSent         ContractStatus = "SENT"
	ContractBuyerSigned  ContractStatus = "BUYER_SIGNED"
	ContractSellerSigned ContractStatus = "SELLER_SIGNED"
	ContractCompleted    ContractStatus = "COMPLETED"
	ContractFailed       ContractStatus = "FAILED"
	ContractCancelled    ContractStatus = "CANCELLED"
	ContractDeclined     ContractStatus = "DECLINED"
)

// SignerRole identifies which party a signature event belongs to.
type SignerRole string

const (
	SignerBuyer  SignerRole = "buyer"
	SignerSeller SignerRole = "seller"
)

// PurchaseRequest represents a buyer's offer on a listing and tracks it
// through negotiation, contract signing and completion. Rows are never
// deleted; terminal statuses are the audit trail.
type PurchaseRequest struct {
	Id             string         `dynamodbav:"id"`
	ListingId      string         `dynamodbav:"listing_id"`
	BuyerId        string         `dynamodbav:"buyer_id"`
	SellerId       string         `dynamodbav:"seller_id"`
	OfferedPrice   int64          `dynamodbav:"offered_price"` // cents
	RequestStatus  RequestStatus  `dynamodbav:"request_status"`
	ContractStatus ContractStatus `dynamodbav:"contract_status,omitempty"`

	// External contract reference, set only after the gateway created a document.
	DocumentId      string `dynamodbav:"document_id,omitempty"`
	ContractViewUrl string `dynamodbav:"contract_view_url,omitempty"`
	BuyerSignUrl    string `dynamodbav:"buyer_sign_url,omitempty"`
	SellerSignUrl   string `dynamodbav:"seller_sign_url,omitempty"`

	// Advisory free-text fields, never drive transitions.
	BuyerMessage  string `dynamodbav:"buyer_message,omitempty"`
	SellerMessage string `dynamodbav:"seller_message,omitempty"`
	RejectReason  string `dynamodbav:"reject_reason,omitempty"`
	DeclineReason string `dynamodbav:"decline_reason,omitempty"`

	Version int64 `dynamodbav:"version"`

	CreatedAt      time.Time  `dynamodbav:"created_at"`
	RespondedAt    *time.Time `dynamodbav:"responded_at,omitempty"`
	BuyerSignedAt  *time.Time `dynamodbav:"buyer_signed_at,omitempty"`
	SellerSignedAt *time.Time `dynamodbav:"seller_signed_at,omitempty"`
	CompletedAt    *time.Time `dynamodbav:"completed_at,omitempty"`
	UpdatedAt      time.Time  `dynamodbav:"updated_at"`
}

// SignedAt returns the recorded signature timestamp for the given role.
func (r *PurchaseRequest) SignedAt(role SignerRole) *time.Time {
	if role == SignerBuyer {
		return r.BuyerSignedAt
	}
	return r.SellerSignedAt
}

// PartyIds returns the accounts observing this request's transitions.
func (r *PurchaseRequest) PartyIds() []string {
	return []string{r.BuyerId, r.SellerId}
}

// ActiveLockId is the key of the lock row that enforces at most one
// non-terminal request per (listing, buyer) pair. The lock row shares the
// requests table and is created and released in the same write as the
// request transition itself.
func ActiveLockId(listingID, buyerID string) string {
	return fmt.Sprintf("active#%s#%s", listingID, buyerID)
}

// ActiveLock is the lock row. RequestId points back at the request holding
// the lock, for manual diagnosis.
type ActiveLock struct {
	Id        string    `dynamodbav:"id"`
	RequestId string    `dynamodbav:"request_id"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// ListingStatus defines the possible states of a listing.
type ListingStatus string

const (
	ListingActive   ListingStatus = "ACTIVE"
	ListingSold     ListingStatus = "SOLD"
	ListingDelisted ListingStatus = "DELISTED"
)

// ListingCategory distinguishes the two kinds of inventory.
type ListingCategory string

const (
	CategoryVehicle ListingCategory = "EV"
	CategoryBattery ListingCategory = "BATTERY"
)

// Listing represents an EV or EV-battery listing.
type Listing struct {
	Id          string          `dynamodbav:"id"`
	SellerId    string          `dynamodbav:"seller_id"`
	Title       string          `dynamodbav:"title"`
	Category    ListingCategory `dynamodbav:"category"`
	AskingPrice int64           `dynamodbav:"asking_price"` // cents
	MileageKm   *int32          `dynamodbav:"mileage_km,omitempty"`
	CapacityKwh *int32          `dynamodbav:"capacity_kwh,omitempty"`
	Status      ListingStatus   `dynamodbav:"status"`
	Version     int64           `dynamodbav:"version"`
	CreatedAt   time.Time       `dynamodbav:"created_at"`
	UpdatedAt   time.Time       `dynamodbav:"updated_at"`
}

// Purchasable reports whether a listing can accept new purchase requests.
func (l *Listing) Purchasable() bool {
	return l.Status == ListingActive
}

// ProcessedEvent records a webhook event that has already been applied,
// keyed by document id, signer and event kind. It makes callback
// idempotence independent of signature timestamps and clock skew.
type ProcessedEvent struct {
	EventId    string     `dynamodbav:"event_id"`
	DocumentId string     `dynamodbav:"document_id"`
	Signer     SignerRole `dynamodbav:"signer"`
	Event      string     `dynamodbav:"event"`
	ReceivedAt time.Time  `dynamodbav:"received_at"`
	TTL        int64      `dynamodbav:"ttl,omitempty"`
}

// EventId builds the dedup key for a webhook event.
func EventId(documentID string, signer SignerRole, event string) string {
	return fmt.Sprintf("%s#%s#%s", documentID, signer, event)
}
