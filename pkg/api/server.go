package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface is the set of operations the HTTP surface exposes.
type ServerInterface interface {
	// (POST /listings)
	CreateListing(w http.ResponseWriter, r *http.Request)
	// (GET /listings)
	ListListings(w http.ResponseWriter, r *http.Request)
	// (GET /listings/{listingId})
	GetListingById(w http.ResponseWriter, r *http.Request, listingId openapi_types.UUID)
	// (POST /requests)
	CreatePurchaseRequest(w http.ResponseWriter, r *http.Request)
	// (GET /requests/{requestId})
	GetRequestById(w http.ResponseWriter, r *http.Request, requestId openapi_types.UUID)
	// (POST /requests/{requestId}/respond)
	RespondToRequestById(w http.ResponseWriter, r *http.Request, requestId openapi_types.UUID)
	// (POST /requests/{requestId}/cancel)
	CancelRequestById(w http.ResponseWriter, r *http.Request, requestId openapi_types.UUID)
	// (GET /accounts/{accountId}/requests)
	ListRequestsByAccountId(w http.ResponseWriter, r *http.Request, accountId string)
	// (POST /webhooks/esign)
	HandleEsignWebhook(w http.ResponseWriter, r *http.Request)
}

// HandlerFromMux mounts all operations of si on the given chi router.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	r.Post("/listings", si.CreateListing)
	r.Get("/listings", si.ListListings)
	r.Get("/listings/{listingId}", func(w http.ResponseWriter, req *http.Request) {
		var listingId openapi_types.UUID
		if !bindUUIDParam(w, req, "listingId", &listingId) {
			return
		}
		si.GetListingById(w, req, listingId)
	})
	r.Post("/requests", si.CreatePurchaseRequest)
	r.Get("/requests/{requestId}", func(w http.ResponseWriter, req *http.Request) {
		var requestId openapi_types.UUID
		if !bindUUIDParam(w, req, "requestId", &requestId) {
			return
		}
		si.GetRequestById(w, req, requestId)
	})
	r.Post("/requests/{requestId}/respond", func(w http.ResponseWriter, req *http.Request) {
		var requestId openapi_types.UUID
		if !bindUUIDParam(w, req, "requestId", &requestId) {
			return
		}
		si.RespondToRequestById(w, req, requestId)
	})
	r.Post("/requests/{requestId}/cancel", func(w http.ResponseWriter, req *http.Request) {
		var requestId openapi_types.UUID
		if !bindUUIDParam(w, req, "requestId", &requestId) {
			return
		}
		si.CancelRequestById(w, req, requestId)
	})
	r.Get("/accounts/{accountId}/requests", func(w http.ResponseWriter, req *http.Request) {
		si.ListRequestsByAccountId(w, req, chi.URLParam(req, "accountId"))
	})
	r.Post("/webhooks/esign", si.HandleEsignWebhook)
	return r
}

// bindUUIDParam parses a UUID path parameter, writing a 400 on failure.
func bindUUIDParam(w http.ResponseWriter, r *http.Request, name string, dst *openapi_types.UUID) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dst, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter %s: %v", name, err), http.StatusBadRequest)
		return false
	}
	return true
}
