package messagingsvc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buyza_commerce/internal/common"
)

func TestSend_PostsCloudAPIPayload(t *testing.T) {
	var captured map[string]interface{}
	var authHeader, path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewWhatsAppService(server.URL, "12345", "token-abc", 1, 5)
	err := svc.Send(context.Background(), "263771234567", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/12345/messages", path)
	assert.Equal(t, "Bearer token-abc", authHeader)
	assert.Equal(t, "whatsapp", captured["messaging_product"])
	assert.Equal(t, "263771234567", captured["to"])
	assert.Equal(t, "text", captured["type"])
	text, ok := captured["text"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hello", text["body"])
}

func TestSend_ExhaustedRetries(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewWhatsAppService(server.URL, "12345", "token-abc", 1, 5)
	err := svc.Send(context.Background(), "263771234567", "hello")

	assert.True(t, errors.Is(err, common.ErrSendExhausted))
	assert.Equal(t, 1, calls)
}

func TestSend_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewWhatsAppService(server.URL, "12345", "token-abc", 3, 5)
	err := svc.Send(ctx, "263771234567", "hello")
	assert.Error(t, err)
}
