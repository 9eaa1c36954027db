package esign

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDocument(t *testing.T) {
	input := &CreateDocumentInput{
		RequestId:    "req1",
		ListingId:    "listing1",
		ListingTitle: "2022 Ioniq 5",
		BuyerId:      "buyer1",
		SellerId:     "seller1",
		Price:        2500000,
	}

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/documents", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var got CreateDocumentInput
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "req1", got.RequestId)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(&Document{
				DocumentId:    "doc1",
				ViewUrl:       "https://esign.example/v/doc1",
				BuyerSignUrl:  "https://esign.example/s/doc1/buyer",
				SellerSignUrl: "https://esign.example/s/doc1/seller",
			})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key")
		doc, err := client.CreateDocument(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, "doc1", doc.DocumentId)
		assert.NotEmpty(t, doc.BuyerSignUrl)
	})

	t.Run("Provider Rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal error", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key")
		_, err := client.CreateDocument(context.Background(), input)

		var gatewayErr *GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
		assert.Equal(t, http.StatusServiceUnavailable, gatewayErr.StatusCode)
	})

	t.Run("Missing Document Id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(&Document{})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key")
		_, err := client.CreateDocument(context.Background(), input)

		var gatewayErr *GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
		assert.Contains(t, gatewayErr.Message, "missing document id")
	})
}

func TestCancelDocument(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v1/documents/doc1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key")
		assert.NoError(t, client.CancelDocument(context.Background(), "doc1"))
	})

	t.Run("Provider Rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key")
		err := client.CancelDocument(context.Background(), "doc1")

		var gatewayErr *GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
		assert.Equal(t, http.StatusNotFound, gatewayErr.StatusCode)
	})
}
