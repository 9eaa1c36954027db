package listings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wattmarket/ev-marketplace/pkg/api"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	storage_mocks "github.com/wattmarket/ev-marketplace/pkg/storage/mocks"
)

func TestCreateListing(t *testing.T) {
	newListing := &api.NewListing{
		SellerId:    "seller1",
		Title:       "2022 Ioniq 5",
		Category:    string(models.CategoryVehicle),
		AskingPrice: 3000000,
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.ListingStore)
		handler := NewListingsHandler(mockStore)

		created := &models.Listing{
			Id:          uuid.New().String(),
			SellerId:    newListing.SellerId,
			Title:       newListing.Title,
			Category:    models.CategoryVehicle,
			AskingPrice: newListing.AskingPrice,
			Status:      models.ListingActive,
			Version:     1,
		}
		mockStore.On("CreateListing", mock.Anything, mock.AnythingOfType("*models.Listing")).Return(created, nil)

		body, _ := json.Marshal(newListing)
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateListing(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Listing
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, api.ListingStatus(models.ListingActive), got.Status)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		handler := NewListingsHandler(new(storage_mocks.ListingStore))

		bad := *newListing
		bad.Category = "SCOOTER"
		body, _ := json.Marshal(&bad)
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateListing(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Non-Positive Price", func(t *testing.T) {
		handler := NewListingsHandler(new(storage_mocks.ListingStore))

		bad := *newListing
		bad.AskingPrice = 0
		body, _ := json.Marshal(&bad)
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateListing(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetListingById(t *testing.T) {
	listingId := uuid.New()

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(storage_mocks.ListingStore)
		handler := NewListingsHandler(mockStore)

		mockStore.On("GetListing", mock.Anything, listingId.String()).Return(nil, storage.ErrListingNotFound)

		req := httptest.NewRequest(http.MethodGet, "/listings/"+listingId.String(), nil)
		rr := httptest.NewRecorder()

		handler.GetListingById(rr, req, listingId)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestListListings(t *testing.T) {
	t.Run("Defaults To Active", func(t *testing.T) {
		mockStore := new(storage_mocks.ListingStore)
		handler := NewListingsHandler(mockStore)

		mockStore.On("ListListings", mock.Anything, models.ListingActive).Return([]models.Listing{
			{Id: "listing1", Status: models.ListingActive},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/listings", nil)
		rr := httptest.NewRecorder()

		handler.ListListings(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Filters By Status", func(t *testing.T) {
		mockStore := new(storage_mocks.ListingStore)
		handler := NewListingsHandler(mockStore)

		mockStore.On("ListListings", mock.Anything, models.ListingSold).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/listings?status=SOLD", nil)
		rr := httptest.NewRecorder()

		handler.ListListings(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})
}
