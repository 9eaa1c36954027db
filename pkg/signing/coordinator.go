package signing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wattmarket/ev-marketplace/pkg/esign"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// Finalizer is the slice of the lifecycle manager the coordinator calls back
// into once both parties have signed.
type Finalizer interface {
	Finalize(ctx context.Context, requestID string) error
}

// Coordinator drives the contract sub-state-machine: document creation on
// acceptance, per-party signature events from the gateway, declines, and
// best-effort remote cancellation.
type Coordinator struct {
	Requests storage.RequestStore
	Listings storage.ListingStore
	Gateway  esign.Client
	Notifier notifications.Dispatcher

	// Finalizer is assigned after construction; the lifecycle manager and
	// the coordinator reference each other through interfaces.
	Finalizer Finalizer
}

// NewCoordinator creates a new Coordinator. The Finalizer is wired by the caller afterwards.
func NewCoordinator(requests storage.RequestStore, listings storage.ListingStore, gateway esign.Client, notifier notifications.Dispatcher) *Coordinator {
	return &Coordinator{Requests: requests, Listings: listings, Gateway: gateway, Notifier: notifier}
}

// Initiate creates the contract document for an accepted request. On success
// the request moves to CONTRACT_SENT and both parties receive their signing
// links. On gateway failure the request lands terminally in CONTRACT_FAILED:
// no automatic retry, a duplicate external document must never be created.
func (c *Coordinator) Initiate(ctx context.Context, req *models.PurchaseRequest) error {
	listing, err := c.Listings.GetListing(ctx, req.ListingId)
	if err != nil {
		return fmt.Errorf("failed to get listing for contract: %w", err)
	}

	doc, err := c.Gateway.CreateDocument(ctx, &esign.CreateDocumentInput{
		RequestId:    req.Id,
		ListingId:    listing.Id,
		ListingTitle: listing.Title,
		BuyerId:      req.BuyerId,
		SellerId:     req.SellerId,
		Price:        req.OfferedPrice,
	})
	if err != nil {
		slog.Error("contract document creation failed", "requestId", req.Id, "error", err)
		if markErr := c.Requests.MarkContractFailed(ctx, req.Id); markErr != nil {
			slog.Error("failed to mark contract failed", "requestId", req.Id, "error", markErr)
		}
		req.RequestStatus = models.RequestContractFailed
		req.ContractStatus = models.ContractFailed

		for _, party := range req.PartyIds() {
			c.notify(ctx, notifications.Notification{
				AccountId: party,
				Type:      notifications.EventContractFailed,
				RequestId: req.Id,
				ListingId: req.ListingId,
			})
		}
		return fmt.Errorf("contract initiation failed: %w", err)
	}

	contract := &storage.ContractDetails{
		DocumentId:      doc.DocumentId,
		ContractViewUrl: doc.ViewUrl,
		BuyerSignUrl:    doc.BuyerSignUrl,
		SellerSignUrl:   doc.SellerSignUrl,
	}
	if err := c.Requests.MarkContractSent(ctx, req.Id, contract); err != nil {
		// The document exists remotely but the row moved under us. Void the
		// document so nobody can sign a contract the system never tracked.
		slog.Error("failed to mark contract sent, voiding remote document", "requestId", req.Id, "documentId", doc.DocumentId, "error", err)
		c.cancelDocument(ctx, doc.DocumentId)
		return err
	}

	req.RequestStatus = models.RequestContractSent
	req.ContractStatus = models.ContractSent
	req.DocumentId = doc.DocumentId
	req.ContractViewUrl = doc.ViewUrl
	req.BuyerSignUrl = doc.BuyerSignUrl
	req.SellerSignUrl = doc.SellerSignUrl

	c.notify(ctx, notifications.Notification{
		AccountId: req.BuyerId,
		Type:      notifications.EventContractSent,
		RequestId: req.Id,
		ListingId: req.ListingId,
		SignUrl:   doc.BuyerSignUrl,
	})
	c.notify(ctx, notifications.Notification{
		AccountId: req.SellerId,
		Type:      notifications.EventContractSent,
		RequestId: req.Id,
		ListingId: req.ListingId,
		SignUrl:   doc.SellerSignUrl,
	})

	return nil
}

// signatureApplyAttempts bounds the re-read loop when concurrent callbacks
// race on the same row. An event still conflicting after the last attempt
// errors out and comes back via provider redelivery.
const signatureApplyAttempts = 3

// HandleSignatureEvent applies one per-party signature callback. The handler
// is idempotent under at-least-once delivery: unknown documents and
// duplicate events are absorbed, not errors. A callback that loses the
// version race against the other party's concurrent signature re-reads the
// row and re-applies. An error return means the event should be redelivered.
func (c *Coordinator) HandleSignatureEvent(ctx context.Context, documentID string, signer models.SignerRole, signedAt time.Time) error {
	var err error
	for attempt := 0; attempt < signatureApplyAttempts; attempt++ {
		if err = c.applySignature(ctx, documentID, signer, signedAt); !errors.Is(err, storage.ErrStateConflict) {
			return err
		}
		slog.Info("signature event lost a version race, re-reading", "documentId", documentID, "signer", signer)
	}
	return err
}

func (c *Coordinator) applySignature(ctx context.Context, documentID string, signer models.SignerRole, signedAt time.Time) error {
	req, err := c.Requests.GetRequestByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			slog.Warn("signature event for unknown document", "documentId", documentID, "signer", signer)
			return nil
		}
		return err
	}

	if req.RequestStatus.Terminal() {
		slog.Info("signature event for terminal request, ignoring", "requestId", req.Id, "status", req.RequestStatus)
		return nil
	}
	if req.SignedAt(signer) != nil {
		// The signature landed on an earlier delivery. Reconcile instead of
		// returning: that delivery may have died before finalizing.
		slog.Info("duplicate signature event", "requestId", req.Id, "signer", signer)
		return c.reconcile(ctx, req.Id)
	}

	otherSigned := req.SignedAt(otherParty(signer)) != nil

	upd := &storage.SignatureUpdate{
		RequestId:  req.Id,
		DocumentId: documentID,
		Signer:     signer,
		SignedAt:   signedAt,
		EventId:    models.EventId(documentID, signer, esign.EventSigned),
		Version:    req.Version,
	}
	if otherSigned {
		upd.ContractStatus = models.ContractCompleted
		upd.RequestStatus = models.RequestContractSigned
	} else {
		upd.RequestStatus = models.RequestContractSent
		if signer == models.SignerBuyer {
			upd.ContractStatus = models.ContractBuyerSigned
		} else {
			upd.ContractStatus = models.ContractSellerSigned
		}
	}

	if err := c.Requests.RecordSignature(ctx, upd); err != nil {
		if errors.Is(err, storage.ErrDuplicateEvent) {
			slog.Info("signature event already processed", "requestId", req.Id, "signer", signer)
			return c.reconcile(ctx, req.Id)
		}
		return err
	}

	if upd.RequestStatus == models.RequestContractSigned {
		for _, party := range req.PartyIds() {
			c.notify(ctx, notifications.Notification{
				AccountId: party,
				Type:      notifications.EventContractSigned,
				RequestId: req.Id,
				ListingId: req.ListingId,
			})
		}
		return c.finalize(ctx, req.Id)
	}

	// Partial signature: tell the party still expected to sign.
	c.notify(ctx, notifications.Notification{
		AccountId: partyId(req, otherParty(signer)),
		Type:      notifications.EventContractSigned,
		RequestId: req.Id,
		ListingId: req.ListingId,
	})

	return nil
}

// HandleDecline terminates the contract after a party refused to sign.
func (c *Coordinator) HandleDecline(ctx context.Context, documentID string, signer models.SignerRole, reason string) error {
	req, err := c.Requests.GetRequestByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			slog.Warn("decline event for unknown document", "documentId", documentID, "signer", signer)
			return nil
		}
		return err
	}

	if req.RequestStatus.Terminal() {
		slog.Info("decline event for terminal request, ignoring", "requestId", req.Id, "status", req.RequestStatus)
		return nil
	}

	eventID := models.EventId(documentID, signer, esign.EventDeclined)
	if err := c.Requests.MarkContractDeclined(ctx, req.Id, reason, eventID); err != nil {
		if errors.Is(err, storage.ErrDuplicateEvent) || errors.Is(err, storage.ErrStateConflict) {
			slog.Info("decline event absorbed", "requestId", req.Id, "signer", signer, "error", err)
			return nil
		}
		return err
	}

	c.notify(ctx, notifications.Notification{
		AccountId: partyId(req, otherParty(signer)),
		Type:      notifications.EventContractDeclined,
		RequestId: req.Id,
		ListingId: req.ListingId,
		Reason:    reason,
	})

	return nil
}

// CancelRemote voids the request's document on the provider. Best-effort:
// failures are logged for manual follow-up, never raised to the caller.
func (c *Coordinator) CancelRemote(ctx context.Context, req *models.PurchaseRequest) {
	if req.DocumentId == "" {
		return
	}
	c.cancelDocument(ctx, req.DocumentId)
}

func (c *Coordinator) cancelDocument(ctx context.Context, documentID string) {
	cancelCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Gateway.CancelDocument(cancelCtx, documentID); err != nil {
		slog.Error("failed to cancel contract document remotely, manual follow-up required", "documentId", documentID, "error", err)
	}
}

// reconcile re-reads a request after an absorbed event and finishes a
// dangling dual-signed request. This covers a redelivered callback whose
// first delivery recorded the signature but crashed before finalizing.
func (c *Coordinator) reconcile(ctx context.Context, requestID string) error {
	req, err := c.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RequestStatus != models.RequestContractSigned {
		return nil
	}
	return c.finalize(ctx, requestID)
}

func (c *Coordinator) finalize(ctx context.Context, requestID string) error {
	if err := c.Finalizer.Finalize(ctx, requestID); err != nil {
		if errors.Is(err, storage.ErrStateConflict) {
			// Another worker finalized first.
			return nil
		}
		return err
	}
	return nil
}

func (c *Coordinator) notify(ctx context.Context, n notifications.Notification) {
	if err := c.Notifier.Dispatch(ctx, n); err != nil {
		slog.Error("failed to dispatch notification", "type", n.Type, "requestId", n.RequestId, "error", err)
	}
}

// otherParty returns the counterpart role of a signer.
func otherParty(signer models.SignerRole) models.SignerRole {
	if signer == models.SignerBuyer {
		return models.SignerSeller
	}
	return models.SignerBuyer
}

// partyId resolves a role to the account id on the request.
func partyId(req *models.PurchaseRequest, role models.SignerRole) string {
	if role == models.SignerBuyer {
		return req.BuyerId
	}
	return req.SellerId
}
