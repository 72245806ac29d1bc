package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"payment_simulator/handler"
	"payment_simulator/validate"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, hub *handler.EventHub) {
	api := app.Group("/api", logger.New())

	payment := api.Group("/payment")
	payment.Post("/create", validate.CreateOrder(), h.CreateOrder)
	payment.Get("/info/:orderId", h.GetOrderInfo)
	payment.Post("/validate", validate.ValidatePayment(), h.ValidatePayment)
	payment.Get("/query/:orderId", h.QueryResult)
	payment.Get("/qrcode/:orderId", h.CheckoutQRCode)

	security := api.Group("/security")
	security.Get("/check", h.SecurityCheck)

	api.Get("/stats", h.GetStats)

	app.Get("/ws/events", websocket.New(hub.Serve))
}
