// Package router registers the webhook domain routes: the Meta
// verification handshake, the event receiver, and the simulate endpoint.
package router

import (
	"github.com/gofiber/fiber/v3"

	flowsvc "buyza_commerce/internal/api/flow/service"
	webhookhdl "buyza_commerce/internal/api/webhook/handler"
)

// Register mounts the webhook routes on the app root. Meta calls
// /webhook directly, so these routes are unversioned and unauthenticated
// beyond the signature check.
func Register(app *fiber.App, flow *flowsvc.FlowService) {
	h := webhookhdl.NewWhatsAppWebhookHandler(flow)

	app.Get("/webhook", h.HandleVerify)
	app.Post("/webhook", h.HandleEvent)
	app.Post("/webhook/simulate", h.HandleSimulate)
}
