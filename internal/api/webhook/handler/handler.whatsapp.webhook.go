// Package handler exposes the WhatsApp webhook over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"

	flowsvc "buyza_commerce/internal/api/flow/service"
	"buyza_commerce/internal/api/webhook/dto"
	"buyza_commerce/internal/api/webhook/models"
	webhooksvc "buyza_commerce/internal/api/webhook/service"
	"buyza_commerce/internal/common"
	"buyza_commerce/internal/global"
	"buyza_commerce/internal/logger"
)

// WhatsAppWebhookHandler receives Meta's webhook calls: the GET
// verification handshake and POSTed message events.
type WhatsAppWebhookHandler struct {
	flow              *flowsvc.FlowService
	webhookLogService *webhooksvc.WebhookLogService
}

// NewWhatsAppWebhookHandler wires the handler to the flow engine.
func NewWhatsAppWebhookHandler(flow *flowsvc.FlowService) *WhatsAppWebhookHandler {
	return &WhatsAppWebhookHandler{
		flow:              flow,
		webhookLogService: webhooksvc.NewWebhookLogService(),
	}
}

// HandleVerify answers the subscription handshake. Meta sends hub.mode,
// hub.verify_token and hub.challenge; a matching token echoes the
// challenge back verbatim.
func (h *WhatsAppWebhookHandler) HandleVerify(c fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == global.ServerConfig.VerifyToken {
		logger.GetAppLogger().Info("Webhook verification succeeded")
		return c.Status(common.StatusOK).SendString(challenge)
	}

	logger.GetAppLogger().WithField("mode", mode).Warn("Webhook verification failed")
	return c.Status(common.StatusForbidden).SendString(common.ErrVerifyFailed.Error())
}

// HandleEvent receives a webhook POST. The contract with Meta is to
// acknowledge fast and never make delivery depend on our processing:
// everything past the signature check answers 200 EVENT_RECEIVED, even
// when the payload is unparseable or carries no message.
func (h *WhatsAppWebhookHandler) HandleEvent(c fiber.Ctx) error {
	rawBody := c.Body()

	// Meta probes with empty bodies; acknowledge without processing.
	if len(rawBody) == 0 {
		return c.Status(common.StatusOK).SendString("OK")
	}

	// The signature covers the raw bytes, so it is checked before any
	// parsing. A bad signature is the only non-200 answer.
	if global.ServerConfig.SignatureCheck {
		header := c.Get("X-Hub-Signature-256")
		if !webhooksvc.VerifySignature(global.ServerConfig.AppSecret, rawBody, header) {
			logger.GetAppLogger().WithField("ip", c.IP()).Warn("Rejected webhook with invalid signature")
			return c.Status(common.StatusUnauthorized).SendString(common.ErrInvalidSignature.Error())
		}
	}

	ctx := c.Context()

	var payload map[string]interface{}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		logger.GetAppLogger().WithError(err).Warn("Webhook body is not valid JSON")
		return c.Status(common.StatusOK).SendString(common.MsgEventReceived)
	}

	event := webhooksvc.ExtractInbound(payload)

	webhookLog, logErr := h.saveWebhookLog(ctx, c, event, string(rawBody))
	if logErr != nil {
		logger.GetAppLogger().WithError(logErr).Warn("Failed to save webhook log")
	}

	if event == nil {
		// Status callbacks and receipts land here.
		if webhookLog != nil {
			_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, true, "")
		}
		return c.Status(common.StatusOK).SendString(common.MsgEventReceived)
	}

	h.flow.HandleIncoming(ctx, flowsvc.IncomingMessage{
		From:      event.SenderID,
		MessageID: event.MessageID,
		Type:      event.MessageType,
		Text:      event.Text,
	})

	if webhookLog != nil {
		_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, true, "")
	}

	return c.Status(common.StatusOK).SendString(common.MsgEventReceived)
}

// HandleSimulate injects a message as if it had arrived from WhatsApp.
// No signature check; the route is for operators, not Meta.
func (h *WhatsAppWebhookHandler) HandleSimulate(c fiber.Ctx) error {
	var req dto.SimulateRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code":    common.ErrCodeValidationFormat.Code,
			"message": "Request body is not valid JSON",
			"status":  "error",
		})
	}

	if err := global.Validate.Struct(&req); err != nil {
		return c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code":    common.ErrCodeValidationInput.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	h.flow.HandleIncoming(c.Context(), flowsvc.IncomingMessage{
		From: req.From,
		Type: "text",
		Text: req.Text,
	})

	return c.Status(common.StatusOK).JSON(fiber.Map{
		"code":    common.StatusOK,
		"message": "Message processed",
		"status":  "success",
	})
}

// saveWebhookLog records the request for the audit trail.
func (h *WhatsAppWebhookHandler) saveWebhookLog(ctx context.Context, c fiber.Ctx, event *dto.InboundEvent, rawBody string) (*models.WebhookLog, error) {
	if !h.webhookLogService.Enabled() {
		return nil, nil
	}

	requestHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		requestHeaders[string(key)] = string(value)
	})

	log := models.WebhookLog{
		Source:         "whatsapp",
		RequestHeaders: requestHeaders,
		RawBody:        rawBody,
		Processed:      false,
		IPAddress:      c.IP(),
		UserAgent:      c.Get("User-Agent"),
		ReceivedAt:     time.Now().UnixMilli(),
	}
	if event != nil {
		log.SenderID = event.SenderID
		log.MessageID = event.MessageID
		log.MessageType = event.MessageType
	}

	return h.webhookLogService.CreateWebhookLog(ctx, log)
}
