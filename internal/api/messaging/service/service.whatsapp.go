// Package messagingsvc sends outbound WhatsApp texts through the Graph API.
package messagingsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"buyza_commerce/internal/common"
	"buyza_commerce/internal/logger"
)

// WhatsAppService posts text messages to the Cloud API messages endpoint.
type WhatsAppService struct {
	baseURL       string
	phoneNumberID string
	accessToken   string
	maxRetries    int
	client        *http.Client
}

// NewWhatsAppService builds the gateway. baseURL is the Graph API root,
// e.g. "https://graph.facebook.com/v18.0".
func NewWhatsAppService(baseURL, phoneNumberID, accessToken string, maxRetries, timeoutSecs int) *WhatsAppService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if timeoutSecs < 1 {
		timeoutSecs = 10
	}
	return &WhatsAppService{
		baseURL:       baseURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		maxRetries:    maxRetries,
		client:        &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second},
	}
}

// Send posts a text message to the phone number, retrying transient
// failures with exponential backoff (2^attempt seconds). After the last
// attempt it returns ErrSendExhausted; the caller decides whether to
// surface that or swallow it.
func (w *WhatsAppService) Send(ctx context.Context, to, body string) error {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		lastErr = w.post(ctx, to, body)
		if lastErr == nil {
			return nil
		}

		logger.GetAppLogger().WithError(lastErr).WithFields(map[string]interface{}{
			"to":      to,
			"attempt": attempt,
		}).Warn("WhatsApp send failed")

		if attempt == w.maxRetries {
			break
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	logger.GetErrorLogger().WithError(lastErr).WithField("to", to).Error("WhatsApp send exhausted retries")
	return common.ErrSendExhausted
}

// post performs one messages call. The payload shape is fixed by the
// Cloud API: messaging_product must be "whatsapp".
func (w *WhatsAppService) post(ctx context.Context, to, body string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]interface{}{
			"body": body,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.accessToken)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graph api returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
