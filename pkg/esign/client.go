package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Document is the external e-signature artifact representing a sale contract.
type Document struct {
	DocumentId    string `json:"document_id"`
	ViewUrl       string `json:"view_url"`
	BuyerSignUrl  string `json:"buyer_sign_url"`
	SellerSignUrl string `json:"seller_sign_url"`
}

// CreateDocumentInput is the listing snapshot and party set the provider
// renders into the contract.
type CreateDocumentInput struct {
	RequestId    string `json:"request_id"`
	ListingId    string `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	BuyerId      string `json:"buyer_id"`
	SellerId     string `json:"seller_id"`
	Price        int64  `json:"price"`
}

// GatewayError is a failure reported by the e-signature provider.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("e-sign gateway error (status %d): %s", e.StatusCode, e.Message)
}

// Client defines the interface to the external e-signature provider.
type Client interface {
	// CreateDocument creates a contract document and returns its id and signing URLs.
	CreateDocument(ctx context.Context, in *CreateDocumentInput) (*Document, error)

	// CancelDocument voids an in-flight document on the provider side.
	CancelDocument(ctx context.Context, documentID string) error
}

// HTTPClient talks to the provider's REST API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPClient initializes a provider client with a bounded request timeout.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Make sure we conform to the interface
var _ Client = (*HTTPClient)(nil)

// CreateDocument creates a contract document on the provider.
func (c *HTTPClient) CreateDocument(ctx context.Context, in *CreateDocumentInput) (*Document, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/documents", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "document creation rejected"}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("invalid response body: %v", err)}
	}
	if doc.DocumentId == "" {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "response missing document id"}
	}

	return &doc, nil
}

// CancelDocument voids a document. Callers on best-effort paths are expected
// to log rather than propagate the error.
func (c *HTTPClient) CancelDocument(ctx context.Context, documentID string) error {
	url := fmt.Sprintf("%s/v1/documents/%s", c.baseURL, documentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return &GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return &GatewayError{StatusCode: resp.StatusCode, Message: "document cancellation rejected"}
	}

	return nil
}
