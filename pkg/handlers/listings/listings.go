package listings

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wattmarket/ev-marketplace/pkg/api"
	"github.com/wattmarket/ev-marketplace/pkg/mapping"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	"github.com/oapi-codegen/runtime/types"
)

// ListingsHandler holds the dependencies for listing-related handlers.
type ListingsHandler struct {
	Store storage.ListingStore
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(store storage.ListingStore) *ListingsHandler {
	return &ListingsHandler{Store: store}
}

// CreateListing handles the logic for creating a new listing.
func (h *ListingsHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var newListing api.NewListing
	if err := json.NewDecoder(r.Body).Decode(&newListing); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if newListing.SellerId == "" || newListing.Title == "" {
		http.Error(w, "seller_id and title are required", http.StatusBadRequest)
		return
	}
	if newListing.AskingPrice <= 0 {
		http.Error(w, "asking_price must be positive", http.StatusBadRequest)
		return
	}
	switch models.ListingCategory(newListing.Category) {
	case models.CategoryVehicle, models.CategoryBattery:
	default:
		http.Error(w, fmt.Sprintf("Unknown listing category: %s", newListing.Category), http.StatusBadRequest)
		return
	}

	domainListing := mapping.ToDomainNewListing(&newListing)

	created, err := h.Store.CreateListing(r.Context(), domainListing)
	if err != nil {
		if errors.Is(err, storage.ErrListingExists) {
			http.Error(w, "Listing already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create listing: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiListing := mapping.ToApiListing(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiListing); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetListingById handles the logic for retrieving a listing by its ID.
func (h *ListingsHandler) GetListingById(w http.ResponseWriter, r *http.Request, listingId types.UUID) {
	domainListing, err := h.Store.GetListing(r.Context(), listingId.String())
	if err != nil {
		if errors.Is(err, storage.ErrListingNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve listing: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiListing := mapping.ToApiListing(domainListing)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiListing); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListListings handles retrieving listings, optionally filtered by status.
func (h *ListingsHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	status := models.ListingStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.ListingActive
	}

	domainListings, err := h.Store.ListListings(r.Context(), status)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve listings: %v", err), http.StatusInternalServerError)
		return
	}

	apiListings := make([]*api.Listing, len(domainListings))
	for i := range domainListings {
		apiListings[i] = mapping.ToApiListing(&domainListings[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiListings); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
