package requests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wattmarket/ev-marketplace/pkg/api"
	"github.com/wattmarket/ev-marketplace/pkg/esign"
	"github.com/wattmarket/ev-marketplace/pkg/lifecycle"
	"github.com/wattmarket/ev-marketplace/pkg/mapping"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	"github.com/oapi-codegen/runtime/types"
)

// LifecycleService is the slice of the lifecycle manager the handlers drive.
type LifecycleService interface {
	Create(ctx context.Context, in lifecycle.CreateInput) (*models.PurchaseRequest, error)
	Respond(ctx context.Context, in lifecycle.RespondInput) (*models.PurchaseRequest, error)
	Cancel(ctx context.Context, requestID, accountID string) error
}

// RequestsHandler holds the dependencies for purchase-request handlers.
type RequestsHandler struct {
	Service LifecycleService
	Store   storage.RequestReader
}

// NewRequestsHandler creates a new RequestsHandler.
func NewRequestsHandler(service LifecycleService, store storage.RequestReader) *RequestsHandler {
	return &RequestsHandler{Service: service, Store: store}
}

// CreatePurchaseRequest handles the logic for opening a new purchase request.
func (h *RequestsHandler) CreatePurchaseRequest(w http.ResponseWriter, r *http.Request) {
	var newReq api.NewPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&newReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Service.Create(r.Context(), mapping.ToCreateInput(&newReq))
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrInvalidOffer):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrListingNotPurchasable):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, lifecycle.ErrForbidden):
			http.Error(w, "Sellers cannot request their own listing", http.StatusForbidden)
		case errors.Is(err, storage.ErrActiveRequestExists):
			http.Error(w, "An active request for this listing already exists", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to create purchase request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiReq := mapping.ToApiPurchaseRequest(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiReq); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetRequestById handles the logic for retrieving a purchase request by its ID.
func (h *RequestsHandler) GetRequestById(w http.ResponseWriter, r *http.Request, requestId types.UUID) {
	domainReq, err := h.Store.GetRequest(r.Context(), requestId.String())
	if err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			http.Error(w, "Purchase request not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve purchase request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiReq := mapping.ToApiPurchaseRequest(domainReq)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiReq); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// RespondToRequestById handles the seller's accept or reject decision.
func (h *RequestsHandler) RespondToRequestById(w http.ResponseWriter, r *http.Request, requestId types.UUID) {
	var decision api.RespondToRequest
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.Respond(r.Context(), lifecycle.RespondInput{
		RequestId:    requestId.String(),
		SellerId:     decision.SellerId,
		Accept:       decision.Accept,
		Message:      decision.Message,
		RejectReason: decision.RejectReason,
	})
	if err != nil {
		var gatewayErr *esign.GatewayError
		switch {
		case errors.Is(err, storage.ErrRequestNotFound):
			http.Error(w, "Purchase request not found", http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrForbidden):
			http.Error(w, "Only the listing seller may respond", http.StatusForbidden)
		case errors.Is(err, storage.ErrStateConflict):
			http.Error(w, "Purchase request is no longer pending", http.StatusConflict)
		case errors.As(err, &gatewayErr):
			// The request persisted terminally as CONTRACT_FAILED; the caller
			// must not retry the acceptance.
			http.Error(w, "Contract creation failed at the signing provider", http.StatusBadGateway)
		default:
			http.Error(w, fmt.Sprintf("Failed to respond to purchase request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiReq := mapping.ToApiPurchaseRequest(updated)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiReq); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CancelRequestById handles a party withdrawing a purchase request.
func (h *RequestsHandler) CancelRequestById(w http.ResponseWriter, r *http.Request, requestId types.UUID) {
	var cancel api.CancelPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&cancel); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	err := h.Service.Cancel(r.Context(), requestId.String(), cancel.AccountId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrRequestNotFound):
			http.Error(w, "Purchase request not found", http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrForbidden):
			http.Error(w, "Account is not a party to this request", http.StatusForbidden)
		case errors.Is(err, storage.ErrStateConflict):
			http.Error(w, "Purchase request is not cancellable", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to cancel purchase request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRequestsByAccountId handles retrieving all requests an account is party to.
func (h *RequestsHandler) ListRequestsByAccountId(w http.ResponseWriter, r *http.Request, accountId string) {
	domainReqs, err := h.Store.ListRequestsByAccountID(r.Context(), accountId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve purchase requests: %v", err), http.StatusInternalServerError)
		return
	}

	apiReqs := make([]*api.PurchaseRequest, len(domainReqs))
	for i := range domainReqs {
		apiReqs[i] = mapping.ToApiPurchaseRequest(&domainReqs[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiReqs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
