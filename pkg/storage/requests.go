package storage

import (
	"context"
	"time"

	"github.com/wattmarket/ev-marketplace/pkg/models"
)

// RequestReader defines the interface for reading purchase request data.
type RequestReader interface {
	// GetRequest retrieves a purchase request by its ID.
	GetRequest(ctx context.Context, requestID string) (*models.PurchaseRequest, error)

	// GetRequestByDocumentID retrieves the purchase request referencing an external contract document.
	GetRequestByDocumentID(ctx context.Context, documentID string) (*models.PurchaseRequest, error)

	// ListRequestsByAccountID retrieves all requests in which the account is buyer or seller.
	ListRequestsByAccountID(ctx context.Context, accountID string) ([]models.PurchaseRequest, error)

	// ListExpiryCandidates retrieves requests that have been in the given status
	// since before the cutoff and are therefore eligible for expiry.
	ListExpiryCandidates(ctx context.Context, status models.RequestStatus, cutoff time.Time) ([]models.PurchaseRequest, error)
}

// ContractDetails carries the external document reference persisted when a
// contract is sent out for signing.
type ContractDetails struct {
	DocumentId      string
	ContractViewUrl string
	BuyerSignUrl    string
	SellerSignUrl   string
}

// SignatureUpdate describes the application of a single gateway signature
// event. The caller decides the resulting statuses; the store guarantees the
// write only lands if the signer has not signed yet, the request is still in
// CONTRACT_SENT at the version the caller read, and the event was not
// applied before.
type SignatureUpdate struct {
	RequestId      string
	DocumentId     string
	Signer         models.SignerRole
	SignedAt       time.Time
	ContractStatus models.ContractStatus
	RequestStatus  models.RequestStatus
	EventId        string

	// Version is the request version the caller read before computing the
	// target statuses. The statuses encode whether the other party had
	// already signed, so the write must not land against any other version.
	Version int64
}

// RequestManager defines the interface for creating purchase requests and
// driving their lifecycle transitions. Every transition is a conditional
// write guarded on the expected current state; a lost race surfaces as
// ErrStateConflict.
type RequestManager interface {
	// CreateRequest creates a request in PENDING and claims the (listing, buyer)
	// active-negotiation lock. Returns ErrActiveRequestExists if the lock is held.
	CreateRequest(ctx context.Context, req *models.PurchaseRequest) (*models.PurchaseRequest, error)

	// MarkAccepted transitions PENDING -> ACCEPTED and records the seller's message.
	MarkAccepted(ctx context.Context, requestID, sellerMessage string) error

	// MarkRejected transitions PENDING -> REJECTED, records the reason and releases the lock.
	MarkRejected(ctx context.Context, requestID, rejectReason string) error

	// MarkContractSent transitions ACCEPTED -> CONTRACT_SENT/SENT and stores the document reference.
	MarkContractSent(ctx context.Context, requestID string, contract *ContractDetails) error

	// MarkContractFailed transitions ACCEPTED -> CONTRACT_FAILED/FAILED and releases the lock.
	MarkContractFailed(ctx context.Context, requestID string) error

	// RecordSignature applies one signature event; see SignatureUpdate.
	// Returns ErrDuplicateEvent if the event was applied before.
	RecordSignature(ctx context.Context, upd *SignatureUpdate) error

	// MarkContractDeclined transitions CONTRACT_SENT -> CONTRACT_FAILED/DECLINED,
	// records the reason, dedups the event and releases the lock.
	MarkContractDeclined(ctx context.Context, requestID, reason, eventID string) error

	// MarkCompleted transitions CONTRACT_SIGNED -> COMPLETED, sets completed_at,
	// marks the listing sold and releases the lock, all in one write.
	MarkCompleted(ctx context.Context, req *models.PurchaseRequest) error

	// MarkCancelled transitions any of PENDING/ACCEPTED/CONTRACT_SENT -> CANCELLED
	// and releases the lock.
	MarkCancelled(ctx context.Context, req *models.PurchaseRequest) error

	// MarkExpired transitions the given status -> EXPIRED and releases the lock.
	MarkExpired(ctx context.Context, req *models.PurchaseRequest, from models.RequestStatus) error
}

// RequestStore combines the reader and manager interfaces.
type RequestStore interface {
	RequestReader
	RequestManager
}
