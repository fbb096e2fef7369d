// Package handler exposes liveness endpoints for load balancers and
// uptime monitors.
package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"buyza_commerce/internal/common"
	"buyza_commerce/internal/global"
)

// SystemHandler serves the root and health routes.
type SystemHandler struct {
	startedAt time.Time
}

// NewSystemHandler records the start time for uptime reporting.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{startedAt: time.Now()}
}

// HandleRoot answers a plain banner so a browser hit shows the service
// is alive.
func (h *SystemHandler) HandleRoot(c fiber.Ctx) error {
	return c.Status(common.StatusOK).SendString("Buyza WhatsApp bot is running")
}

// HandleHealth reports service status and dependency wiring.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	return c.Status(common.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"uptime":  time.Since(h.startedAt).String(),
		"mongodb": global.MongoDB_Session != nil,
		"time":    time.Now().Format(time.RFC3339),
	})
}
