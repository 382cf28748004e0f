package bictorys

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	WebhookSecret = "whsec_test"
	defer func() { WebhookSecret = "" }()

	body := []byte(`{"merchantReference":"abc","status":"succeeded"}`)
	good := sign("whsec_test", body)

	assert.True(t, VerifySignature(body, good))
	assert.True(t, VerifySignature(body, "sha256="+good), "prefixed form is accepted")
	assert.False(t, VerifySignature(body, sign("wrong", body)))
	assert.False(t, VerifySignature([]byte(`tampered`), good))
	assert.False(t, VerifySignature(body, ""))
}

func TestVerifySignatureNoSecret(t *testing.T) {
	WebhookSecret = ""
	assert.True(t, VerifySignature([]byte("anything"), ""), "empty secret skips verification")
}

func TestCreateCheckoutMock(t *testing.T) {
	Mock = true
	SuccessURL = "http://localhost:3000/paiement/succes"

	session, err := CreateCheckout(1000, "XOF", "ref-123", "+221771234567")
	require.NoError(t, err)
	assert.Equal(t, "ref-123", session.Reference)
	assert.Contains(t, session.CheckoutURL, "ref=ref-123")
}
