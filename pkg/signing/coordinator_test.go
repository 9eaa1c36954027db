package signing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wattmarket/ev-marketplace/pkg/esign"
	esign_mocks "github.com/wattmarket/ev-marketplace/pkg/esign/mocks"
	"github.com/wattmarket/ev-marketplace/pkg/models"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	notification_mocks "github.com/wattmarket/ev-marketplace/pkg/notifications/mocks"
	signing_mocks "github.com/wattmarket/ev-marketplace/pkg/signing/mocks"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
	storage_mocks "github.com/wattmarket/ev-marketplace/pkg/storage/mocks"
)

func acceptedRequest() *models.PurchaseRequest {
	return &models.PurchaseRequest{
		Id:            "req1",
		ListingId:     "listing1",
		BuyerId:       "buyer1",
		SellerId:      "seller1",
		OfferedPrice:  2500000,
		RequestStatus: models.RequestAccepted,
	}
}

func sentRequest() *models.PurchaseRequest {
	return &models.PurchaseRequest{
		Id:             "req1",
		ListingId:      "listing1",
		BuyerId:        "buyer1",
		SellerId:       "seller1",
		RequestStatus:  models.RequestContractSent,
		ContractStatus: models.ContractSent,
		DocumentId:     "doc1",
		Version:        4,
	}
}

// gatedRequestStore is an in-memory store whose first two document reads
// rendezvous, so two callbacks observe the same unsigned row before either
// writes. RecordSignature enforces the same guards as the DynamoDB store.
type gatedRequestStore struct {
	storage.RequestStore

	mu        sync.Mutex
	row       models.PurchaseRequest
	events    map[string]bool
	readCount int
	firstTwo  sync.WaitGroup
}

func newGatedRequestStore(row models.PurchaseRequest) *gatedRequestStore {
	s := &gatedRequestStore{row: row, events: map[string]bool{}}
	s.firstTwo.Add(2)
	return s
}

func (s *gatedRequestStore) GetRequestByDocumentID(ctx context.Context, documentID string) (*models.PurchaseRequest, error) {
	s.mu.Lock()
	row := s.row
	gated := s.readCount < 2
	s.readCount++
	s.mu.Unlock()

	if gated {
		s.firstTwo.Done()
		s.firstTwo.Wait()
	}
	return &row, nil
}

func (s *gatedRequestStore) GetRequest(ctx context.Context, requestID string) (*models.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.row
	return &row, nil
}

func (s *gatedRequestStore) RecordSignature(ctx context.Context, upd *storage.SignatureUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events[upd.EventId] {
		return storage.ErrDuplicateEvent
	}
	if s.row.RequestStatus != models.RequestContractSent ||
		s.row.Version != upd.Version ||
		s.row.SignedAt(upd.Signer) != nil {
		return storage.ErrStateConflict
	}

	signedAt := upd.SignedAt
	if upd.Signer == models.SignerBuyer {
		s.row.BuyerSignedAt = &signedAt
	} else {
		s.row.SellerSignedAt = &signedAt
	}
	s.row.ContractStatus = upd.ContractStatus
	s.row.RequestStatus = upd.RequestStatus
	s.row.Version++
	s.events[upd.EventId] = true
	return nil
}

func TestInitiate(t *testing.T) {
	listing := &models.Listing{Id: "listing1", SellerId: "seller1", Title: "2022 Ioniq 5", Status: models.ListingActive}
	doc := &esign.Document{
		DocumentId:    "doc1",
		ViewUrl:       "https://esign.example/v/doc1",
		BuyerSignUrl:  "https://esign.example/s/doc1/buyer",
		SellerSignUrl: "https://esign.example/s/doc1/seller",
	}

	t.Run("Success", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockListings := new(storage_mocks.ListingStore)
		mockGateway := new(esign_mocks.Client)
		mockNotifier := new(notification_mocks.Dispatcher)
		c := NewCoordinator(mockRequests, mockListings, mockGateway, mockNotifier)

		mockListings.On("GetListing", mock.Anything, "listing1").Return(listing, nil)
		mockGateway.On("CreateDocument", mock.Anything, mock.MatchedBy(func(in *esign.CreateDocumentInput) bool {
			return in.RequestId == "req1" && in.BuyerId == "buyer1" && in.SellerId == "seller1"
		})).Return(doc, nil)
		mockRequests.On("MarkContractSent", mock.Anything, "req1", mock.MatchedBy(func(contract *storage.ContractDetails) bool {
			return contract.DocumentId == "doc1"
		})).Return(nil)
		// Each party gets their own signing link.
		mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
			return n.AccountId == "buyer1" && n.Type == notifications.EventContractSent && n.SignUrl == doc.BuyerSignUrl
		})).Return(nil)
		mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
			return n.AccountId == "seller1" && n.Type == notifications.EventContractSent && n.SignUrl == doc.SellerSignUrl
		})).Return(nil)

		req := acceptedRequest()
		err := c.Initiate(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, models.RequestContractSent, req.RequestStatus)
		assert.Equal(t, "doc1", req.DocumentId)
		mockRequests.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Gateway Failure Is Terminal", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockListings := new(storage_mocks.ListingStore)
		mockGateway := new(esign_mocks.Client)
		mockNotifier := new(notification_mocks.Dispatcher)
		c := NewCoordinator(mockRequests, mockListings, mockGateway, mockNotifier)

		mockListings.On("GetListing", mock.Anything, "listing1").Return(listing, nil)
		mockGateway.On("CreateDocument", mock.Anything, mock.Anything).Return(nil, &esign.GatewayError{StatusCode: 503, Message: "unavailable"})
		mockRequests.On("MarkContractFailed", mock.Anything, "req1").Return(nil)
		mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
			return n.Type == notifications.EventContractFailed
		})).Return(nil).Times(2)

		req := acceptedRequest()
		err := c.Initiate(context.Background(), req)

		assert.Error(t, err)
		var gatewayErr *esign.GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
		assert.Equal(t, models.RequestContractFailed, req.RequestStatus)
		mockRequests.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Lost Race Voids Remote Document", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockListings := new(storage_mocks.ListingStore)
		mockGateway := new(esign_mocks.Client)
		c := NewCoordinator(mockRequests, mockListings, mockGateway, &notifications.NoOpDispatcher{})

		mockListings.On("GetListing", mock.Anything, "listing1").Return(listing, nil)
		mockGateway.On("CreateDocument", mock.Anything, mock.Anything).Return(doc, nil)
		mockRequests.On("MarkContractSent", mock.Anything, "req1", mock.Anything).Return(storage.ErrStateConflict)
		mockGateway.On("CancelDocument", mock.Anything, "doc1").Return(nil)

		err := c.Initiate(context.Background(), acceptedRequest())

		assert.ErrorIs(t, err, storage.ErrStateConflict)
		mockGateway.AssertExpectations(t)
	})
}

func TestHandleSignatureEvent(t *testing.T) {
	signedAt := time.Now()

	t.Run("First Signature", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockNotifier := new(notification_mocks.Dispatcher)
		c := NewCoordinator(mockRequests, nil, nil, mockNotifier)

		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(sentRequest(), nil)
		mockRequests.On("RecordSignature", mock.Anything, mock.MatchedBy(func(upd *storage.SignatureUpdate) bool {
			return upd.Signer == models.SignerBuyer &&
				upd.ContractStatus == models.ContractBuyerSigned &&
				upd.RequestStatus == models.RequestContractSent &&
				upd.Version == int64(4)
		})).Return(nil)
		// The party still expected to sign is nudged.
		mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
			return n.AccountId == "seller1" && n.Type == notifications.EventContractSigned
		})).Return(nil)

		err := c.HandleSignatureEvent(context.Background(), "doc1", models.SignerBuyer, signedAt)

		assert.NoError(t, err)
		mockRequests.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Second Signature Finalizes", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockNotifier := new(notification_mocks.Dispatcher)
		mockFinalizer := new(signing_mocks.Finalizer)
		c := NewCoordinator(mockRequests, nil, nil, mockNotifier)
		c.Finalizer = mockFinalizer

		buyerSigned := sentRequest()
		buyerSigned.ContractStatus = models.ContractBuyerSigned
		buyerSigned.BuyerSignedAt = &signedAt

		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(buyerSigned, nil)
		mockRequests.On("RecordSignature", mock.Anything, mock.MatchedBy(func(upd *storage.SignatureUpdate) bool {
			return upd.Signer == models.SignerSeller &&
				upd.ContractStatus == models.ContractCompleted &&
				upd.RequestStatus == models.RequestContractSigned
		})).Return(nil)
		mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
			return n.Type == notifications.EventContractSigned
		})).Return(nil).Times(2)
		mockFinalizer.On("Finalize", mock.Anything, "req1").Return(nil)

		err := c.HandleSignatureEvent(context.Background(), "doc1", models.SignerSeller, signedAt)

		assert.NoError(t, err)
		mockRequests.AssertExpectations(t)
		mockFinalizer.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Duplicate Signer Absorbed", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})

		buyerSigned := sentRequest()
		buyerSigned.ContractStatus = models.ContractBuyerSigned
		buyerSigned.BuyerSignedAt = &signedAt
		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(buyerSigned, nil)
		mockRequests.On("GetRequest", mock.Anything, "req1").Return(buyerSigned, nil)

		err := c.HandleSignatureEvent(context.Background(), "doc1", models.SignerBuyer, signedAt)

		assert.NoError(t, err)
		mockRequests.AssertNotCalled(t, "RecordSignature", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate After Crash Finalizes", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockFinalizer := new(signing_mocks.Finalizer)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})
		c.Finalizer = mockFinalizer

		// Both signatures landed but the worker died before finalizing; the
		// redelivered callback for an already-recorded signer must repair it.
		dualSigned := sentRequest()
		dualSigned.RequestStatus = models.RequestContractSigned
		dualSigned.ContractStatus = models.ContractCompleted
		dualSigned.BuyerSignedAt = &signedAt
		dualSigned.SellerSignedAt = &signedAt
		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(dualSigned, nil)
		mockRequests.On("GetRequest", mock.Anything, "req1").Return(dualSigned, nil)
		mockFinalizer.On("Finalize", mock.Anything, "req1").Return(nil)

		err := c.HandleSignatureEvent(context.Background(), "doc1", models.SignerBuyer, signedAt)

		assert.NoError(t, err)
		mockRequests.AssertNotCalled(t, "RecordSignature", mock.Anything, mock.Anything)
		mockFinalizer.AssertExpectations(t)
	})

	t.Run("Concurrent Signatures Serialize", func(t *testing.T) {
		store := newGatedRequestStore(*sentRequest())
		mockFinalizer := new(signing_mocks.Finalizer)
		c := NewCoordinator(store, nil, nil, &notifications.NoOpDispatcher{})
		c.Finalizer = mockFinalizer

		mockFinalizer.On("Finalize", mock.Anything, "req1").Return(nil).Once()

		// Both callbacks read the unsigned row before either writes; the
		// version guard forces the loser to re-read and apply second.
		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = c.HandleSignatureEvent(context.Background(), "doc1", models.SignerBuyer, signedAt)
		}()
		go func() {
			defer wg.Done()
			errs[1] = c.HandleSignatureEvent(context.Background(), "doc1", models.SignerSeller, signedAt)
		}()
		wg.Wait()

		assert.NoError(t, errs[0])
		assert.NoError(t, errs[1])

		final, err := store.GetRequest(context.Background(), "req1")
		assert.NoError(t, err)
		assert.Equal(t, models.RequestContractSigned, final.RequestStatus)
		assert.Equal(t, models.ContractCompleted, final.ContractStatus)
		assert.NotNil(t, final.BuyerSignedAt)
		assert.NotNil(t, final.SellerSignedAt)
		mockFinalizer.AssertExpectations(t)
	})

	t.Run("Unknown Document Absorbed", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})

		mockRequests.On("GetRequestByDocumentID", mock.Anything, "mystery").Return(nil, storage.ErrRequestNotFound)

		err := c.HandleSignatureEvent(context.Background(), "mystery", models.SignerBuyer, signedAt)

		assert.NoError(t, err)
	})

	t.Run("Redelivery After Crash Finalizes", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockFinalizer := new(signing_mocks.Finalizer)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})
		c.Finalizer = mockFinalizer

		// The first delivery recorded the signature but died before
		// finalizing; the retry finds the dedup row and reconciles.
		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(sentRequest(), nil)
		mockRequests.On("RecordSignature", mock.Anything, mock.Anything).Return(storage.ErrDuplicateEvent)
		dualSigned := sentRequest()
		dualSigned.RequestStatus = models.RequestContractSigned
		mockRequests.On("GetRequest", mock.Anything, "req1").Return(dualSigned, nil)
		mockFinalizer.On("Finalize", mock.Anything, "req1").Return(nil)

		err := c.HandleSignatureEvent(context.Background(), "doc1", models.SignerBuyer, signedAt)

		assert.NoError(t, err)
		mockFinalizer.AssertExpectations(t)
	})

	t.Run("Storage Error Surfaces For Redelivery", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})

		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(sentRequest(), nil)
		mockRequests.On("RecordSignature", mock.Anything, mock.Anything).Return(errors.New("throttled"))

		err := c.HandleSignatureEvent(context.Background(), "doc1", models.SignerBuyer, signedAt)

		assert.Error(t, err)
	})
}

func TestHandleDecline(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		mockNotifier := new(notification_mocks.Dispatcher)
		c := NewCoordinator(mockRequests, nil, nil, mockNotifier)

		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(sentRequest(), nil)
		mockRequests.On("MarkContractDeclined", mock.Anything, "req1", "changed my mind", models.EventId("doc1", models.SignerBuyer, esign.EventDeclined)).Return(nil)
		mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
			return n.AccountId == "seller1" && n.Type == notifications.EventContractDeclined && n.Reason == "changed my mind"
		})).Return(nil)

		err := c.HandleDecline(context.Background(), "doc1", models.SignerBuyer, "changed my mind")

		assert.NoError(t, err)
		mockRequests.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Duplicate Absorbed", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})

		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(sentRequest(), nil)
		mockRequests.On("MarkContractDeclined", mock.Anything, "req1", "", mock.Anything).Return(storage.ErrDuplicateEvent)

		err := c.HandleDecline(context.Background(), "doc1", models.SignerBuyer, "")

		assert.NoError(t, err)
		mockRequests.AssertExpectations(t)
	})

	t.Run("Terminal Request Absorbed", func(t *testing.T) {
		mockRequests := new(storage_mocks.RequestStore)
		c := NewCoordinator(mockRequests, nil, nil, &notifications.NoOpDispatcher{})

		cancelled := sentRequest()
		cancelled.RequestStatus = models.RequestCancelled
		mockRequests.On("GetRequestByDocumentID", mock.Anything, "doc1").Return(cancelled, nil)

		err := c.HandleDecline(context.Background(), "doc1", models.SignerSeller, "")

		assert.NoError(t, err)
		mockRequests.AssertNotCalled(t, "MarkContractDeclined", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
