package webhooksvc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_ValidSignature(t *testing.T) {
	body := []byte(`{"object":"whatsapp_business_account"}`)
	header := signBody("top-secret", body)

	assert.True(t, VerifySignature("top-secret", body, header))
}

func TestVerifySignature_EmptyBody(t *testing.T) {
	// HMAC over zero bytes is still deterministic; only the secret feeds it.
	header := signBody("top-secret", nil)

	assert.True(t, VerifySignature("top-secret", nil, header))
	assert.True(t, VerifySignature("top-secret", []byte{}, header))
	assert.False(t, VerifySignature("top-secret", []byte("x"), header))
}

func TestVerifySignature_TamperedBody(t *testing.T) {
	body := []byte(`{"object":"whatsapp_business_account"}`)
	header := signBody("top-secret", body)

	tampered := []byte(`{"object":"whatsapp_business_account","x":1}`)
	assert.False(t, VerifySignature("top-secret", tampered, header))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	body := []byte(`{"a":1}`)
	header := signBody("other-secret", body)

	assert.False(t, VerifySignature("top-secret", body, header))
}

func TestVerifySignature_FailsClosed(t *testing.T) {
	body := []byte(`{"a":1}`)

	t.Run("missing header", func(t *testing.T) {
		assert.False(t, VerifySignature("top-secret", body, ""))
	})

	t.Run("missing prefix", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("top-secret"))
		mac.Write(body)
		assert.False(t, VerifySignature("top-secret", body, hex.EncodeToString(mac.Sum(nil))))
	})

	t.Run("not hex", func(t *testing.T) {
		assert.False(t, VerifySignature("top-secret", body, "sha256=zzzz"))
	})

	t.Run("empty secret", func(t *testing.T) {
		header := signBody("", body)
		assert.False(t, VerifySignature("", body, header))
	})
}
