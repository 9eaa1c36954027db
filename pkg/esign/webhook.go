package esign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/wattmarket/ev-marketplace/pkg/models"
)

// Webhook event kinds delivered by the provider.
const (
	EventSigned   = "signed"
	EventDeclined = "declined"
)

// SignatureHeader carries the HMAC of the webhook body.
const SignatureHeader = "X-Esign-Signature"

// WebhookEvent is the provider's callback payload. Delivery is at-least-once;
// consumers must absorb duplicates.
type WebhookEvent struct {
	DocumentId string            `json:"document_id"`
	SignerRole models.SignerRole `json:"signer_role"`
	Event      string            `json:"event"`
	Timestamp  time.Time         `json:"timestamp"`
	Reason     string            `json:"reason,omitempty"`
}

// SignBody computes the signature header value for a webhook body.
func SignBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook body against its signature header using
// a constant-time comparison.
func VerifySignature(secret string, body []byte, signatureHeader string) bool {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || secret == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(sig), "sha256=") {
		sig = sig[len("sha256="):]
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
