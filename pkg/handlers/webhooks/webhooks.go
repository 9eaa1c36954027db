package webhooks

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wattmarket/ev-marketplace/pkg/esign"
	"github.com/wattmarket/ev-marketplace/pkg/models"
)

// maxBodyBytes caps webhook payloads well above any legitimate event size.
const maxBodyBytes = 1 << 20

// SignatureCoordinator is the slice of the signing coordinator webhook
// delivery drives.
type SignatureCoordinator interface {
	HandleSignatureEvent(ctx context.Context, documentID string, signer models.SignerRole, signedAt time.Time) error
	HandleDecline(ctx context.Context, documentID string, signer models.SignerRole, reason string) error
}

// WebhooksHandler receives signature callbacks from the e-signature provider.
type WebhooksHandler struct {
	Coordinator SignatureCoordinator
	Secret      string
}

// NewWebhooksHandler creates a new WebhooksHandler.
func NewWebhooksHandler(coordinator SignatureCoordinator, secret string) *WebhooksHandler {
	return &WebhooksHandler{Coordinator: coordinator, Secret: secret}
}

// HandleEsignWebhook authenticates and applies one provider callback. A 200
// acknowledges the event; any 5xx tells the provider to redeliver.
func (h *WebhooksHandler) HandleEsignWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	if !esign.VerifySignature(h.Secret, body, r.Header.Get(esign.SignatureHeader)) {
		http.Error(w, "Invalid webhook signature", http.StatusUnauthorized)
		return
	}

	var event esign.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "Invalid webhook payload", http.StatusBadRequest)
		return
	}
	if event.DocumentId == "" {
		http.Error(w, "Webhook payload missing document_id", http.StatusBadRequest)
		return
	}
	switch event.SignerRole {
	case models.SignerBuyer, models.SignerSeller:
	default:
		http.Error(w, "Unknown signer role", http.StatusBadRequest)
		return
	}

	switch event.Event {
	case esign.EventSigned:
		signedAt := event.Timestamp
		if signedAt.IsZero() {
			signedAt = time.Now()
		}
		err = h.Coordinator.HandleSignatureEvent(r.Context(), event.DocumentId, event.SignerRole, signedAt)
	case esign.EventDeclined:
		err = h.Coordinator.HandleDecline(r.Context(), event.DocumentId, event.SignerRole, event.Reason)
	default:
		// Unknown event kinds are acknowledged so the provider stops
		// redelivering them.
		slog.Warn("ignoring unknown webhook event kind", "event", event.Event, "documentId", event.DocumentId)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		slog.Error("webhook processing failed", "event", event.Event, "documentId", event.DocumentId, "error", err)
		http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
