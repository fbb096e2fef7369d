// Package router registers the system routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	systemhdl "buyza_commerce/internal/api/system/handler"
)

// Register mounts the liveness routes on the app root.
func Register(app *fiber.App) {
	h := systemhdl.NewSystemHandler()

	app.Get("/", h.HandleRoot)
	app.Get("/health", h.HandleHealth)
}
