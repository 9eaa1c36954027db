package handlers

import (
	"net/http"

	"github.com/wattmarket/ev-marketplace/pkg/api"
	"github.com/wattmarket/ev-marketplace/pkg/handlers/listings"
	"github.com/wattmarket/ev-marketplace/pkg/handlers/requests"
	"github.com/wattmarket/ev-marketplace/pkg/handlers/webhooks"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ApiHandler implements the server interface by delegating to the
// per-entity handlers.
type ApiHandler struct {
	Requests *requests.RequestsHandler
	Listings *listings.ListingsHandler
	Webhooks *webhooks.WebhooksHandler
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(requestsHandler *requests.RequestsHandler, listingsHandler *listings.ListingsHandler, webhooksHandler *webhooks.WebhooksHandler) *ApiHandler {
	return &ApiHandler{
		Requests: requestsHandler,
		Listings: listingsHandler,
		Webhooks: webhooksHandler,
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

func (h *ApiHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	h.Listings.CreateListing(w, r)
}

func (h *ApiHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	h.Listings.ListListings(w, r)
}

func (h *ApiHandler) GetListingById(w http.ResponseWriter, r *http.Request, listingId openapi_types.UUID) {
	h.Listings.GetListingById(w, r, listingId)
}

func (h *ApiHandler) CreatePurchaseRequest(w http.ResponseWriter, r *http.Request) {
	h.Requests.CreatePurchaseRequest(w, r)
}

func (h *ApiHandler) GetRequestById(w http.ResponseWriter, r *http.Request, requestId openapi_types.UUID) {
	h.Requests.GetRequestById(w, r, requestId)
}

func (h *ApiHandler) RespondToRequestById(w http.ResponseWriter, r *http.Request, requestId openapi_types.UUID) {
	h.Requests.RespondToRequestById(w, r, requestId)
}

func (h *ApiHandler) CancelRequestById(w http.ResponseWriter, r *http.Request, requestId openapi_types.UUID) {
	h.Requests.CancelRequestById(w, r, requestId)
}

func (h *ApiHandler) ListRequestsByAccountId(w http.ResponseWriter, r *http.Request, accountId string) {
	h.Requests.ListRequestsByAccountId(w, r, accountId)
}

func (h *ApiHandler) HandleEsignWebhook(w http.ResponseWriter, r *http.Request) {
	h.Webhooks.HandleEsignWebhook(w, r)
}
