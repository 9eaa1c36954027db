package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// ContractInitiator is the slice of the signing coordinator the lifecycle
// manager drives: contract creation on acceptance and best-effort remote
// cancellation.
type ContractInitiator interface {
	// Initiate creates the contract document for an accepted request and
	// advances it to CONTRACT_SENT, or to CONTRACT_FAILED on gateway failure.
	Initiate(ctx context.Context, req *models.PurchaseRequest) error

	// CancelRemote voids the request's document on the provider, best-effort.
	CancelRemote(ctx context.Context, req *models.PurchaseRequest)
}

// Service owns the purchase request lifecycle: creation, seller response,
// cancellation and finalization. Contract signing itself is delegated to the
// signing coordinator.
type Service struct {
	Requests  storage.RequestStore
	Listings  storage.ListingStore
	Contracts ContractInitiator
	Notifier  notifications.Dispatcher
}

// NewService creates a new lifecycle Service.
func NewService(requests storage.RequestStore, listings storage.ListingStore, contracts ContractInitiator, notifier notifications.Dispatcher) *Service {
	return &Service{Requests: requests, Listings: listings, Contracts: contracts, Notifier: notifier}
}

// CreateInput carries a buyer's offer on a listing.
type CreateInput struct {
	ListingId    string
	BuyerId      string
	OfferedPrice int64
	Message      string
}

// Create opens a negotiation: it validates the listing is purchasable and
// creates a PENDING request. The (listing, buyer) uniqueness is enforced by
// the store's lock row, not by the read-side checks here.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.PurchaseRequest, error) {
	if in.OfferedPrice <= 0 {
		return nil, ErrInvalidOffer
	}

	listing, err := s.Listings.GetListing(ctx, in.ListingId)
	if err != nil {
		return nil, err
	}
	if !listing.Purchasable() {
		return nil, ErrListingNotPurchasable
	}
	if listing.SellerId == in.BuyerId {
		return nil, ErrForbidden
	}

	req := &models.PurchaseRequest{
		ListingId:    in.ListingId,
		BuyerId:      in.BuyerId,
		SellerId:     listing.SellerId,
		OfferedPrice: in.OfferedPrice,
		BuyerMessage: in.Message,
	}

	created, err := s.Requests.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.Notification{
		AccountId: created.SellerId,
		Type:      notifications.EventRequestCreated,
		RequestId: created.Id,
		ListingId: created.ListingId,
	})

	return created, nil
}

// RespondInput carries the seller's decision on a pending request.
type RespondInput struct {
	RequestId    string
	SellerId     string
	Accept       bool
	Message      string
	RejectReason string
}

// Respond applies the seller's decision. Acceptance hands the request to the
// signing coordinator; a gateway failure there is surfaced to the caller and
// leaves the request terminally in CONTRACT_FAILED.
func (s *Service) Respond(ctx context.Context, in RespondInput) (*models.PurchaseRequest, error) {
	req, err := s.Requests.GetRequest(ctx, in.RequestId)
	if err != nil {
		return nil, err
	}
	if req.SellerId != in.SellerId {
		return nil, ErrForbidden
	}
	if req.RequestStatus != models.RequestPending {
		return nil, storage.ErrStateConflict
	}

	now := time.Now()

	if !in.Accept {
		if err := s.Requests.MarkRejected(ctx, in.RequestId, in.RejectReason); err != nil {
			return nil, err
		}
		req.RequestStatus = models.RequestRejected
		req.RejectReason = in.RejectReason
		req.RespondedAt = &now

		s.notify(ctx, notifications.Notification{
			AccountId: req.BuyerId,
			Type:      notifications.EventRequestRejected,
			RequestId: req.Id,
			ListingId: req.ListingId,
			Reason:    in.RejectReason,
		})
		return req, nil
	}

	if err := s.Requests.MarkAccepted(ctx, in.RequestId, in.Message); err != nil {
		return nil, err
	}
	req.RequestStatus = models.RequestAccepted
	req.SellerMessage = in.Message
	req.RespondedAt = &now

	s.notify(ctx, notifications.Notification{
		AccountId: req.BuyerId,
		Type:      notifications.EventRequestAccepted,
		RequestId: req.Id,
		ListingId: req.ListingId,
	})

	if err := s.Contracts.Initiate(ctx, req); err != nil {
		return req, err
	}

	return req, nil
}

// cancellable statuses: a request can be withdrawn by either party up to the
// point where both signatures exist.
func cancellable(status models.RequestStatus) bool {
	switch status {
	case models.RequestPending, models.RequestAccepted, models.RequestContractSent:
		return true
	}
	return false
}

// Cancel withdraws a request on behalf of either party. An in-flight
// contract document is cancelled remotely best-effort; a remote failure
// never blocks the local cancellation.
func (s *Service) Cancel(ctx context.Context, requestID, accountID string) error {
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if accountID != req.BuyerId && accountID != req.SellerId {
		return ErrForbidden
	}
	if !cancellable(req.RequestStatus) {
		return storage.ErrStateConflict
	}

	if err := s.Requests.MarkCancelled(ctx, req); err != nil {
		return err
	}

	if req.DocumentId != "" {
		s.Contracts.CancelRemote(ctx, req)
	}

	for _, party := range req.PartyIds() {
		s.notify(ctx, notifications.Notification{
			AccountId: party,
			Type:      notifications.EventRequestCancelled,
			RequestId: req.Id,
			ListingId: req.ListingId,
		})
	}

	return nil
}

// Finalize completes a dual-signed request: COMPLETED with completed_at set
// and the listing marked sold, then both parties notified. Invoked by the
// signing coordinator once the second signature lands.
func (s *Service) Finalize(ctx context.Context, requestID string) error {
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.Requests.MarkCompleted(ctx, req); err != nil {
		return err
	}

	for _, party := range req.PartyIds() {
		s.notify(ctx, notifications.Notification{
			AccountId: party,
			Type:      notifications.EventRequestCompleted,
			RequestId: req.Id,
			ListingId: req.ListingId,
		})
	}

	return nil
}

// notify dispatches fire-and-forget; a delivery failure is logged and never
// fails the transition that produced it.
func (s *Service) notify(ctx context.Context, n notifications.Notification) {
	if err := s.Notifier.Dispatch(ctx, n); err != nil {
		slog.Error("failed to dispatch notification", "type", n.Type, "requestId", n.RequestId, "error", err)
	}
}

// IsNotFound reports whether the error is any of the data layer's not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrRequestNotFound) || errors.Is(err, storage.ErrListingNotFound)
}
