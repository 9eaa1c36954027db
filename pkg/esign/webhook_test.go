package esign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"document_id":"doc1","signer_role":"buyer","event":"signed"}`)

	t.Run("Round Trip", func(t *testing.T) {
		sig := SignBody(secret, body)
		assert.True(t, VerifySignature(secret, body, sig))
	})

	t.Run("Tampered Body", func(t *testing.T) {
		sig := SignBody(secret, body)
		tampered := []byte(`{"document_id":"doc1","signer_role":"seller","event":"signed"}`)
		assert.False(t, VerifySignature(secret, tampered, sig))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		sig := SignBody("other_secret", body)
		assert.False(t, VerifySignature(secret, body, sig))
	})

	t.Run("Prefix Is Optional", func(t *testing.T) {
		sig := SignBody(secret, body)
		assert.True(t, VerifySignature(secret, body, sig[len("sha256="):]))
	})

	t.Run("Empty Signature", func(t *testing.T) {
		assert.False(t, VerifySignature(secret, body, ""))
	})

	t.Run("Empty Secret", func(t *testing.T) {
		assert.False(t, VerifySignature("", body, SignBody("", body)))
	})

	t.Run("Malformed Hex", func(t *testing.T) {
		assert.False(t, VerifySignature(secret, body, "sha256=not-hex"))
	})
}
