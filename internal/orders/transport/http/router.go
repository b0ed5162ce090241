package http

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *OrderHandler) {
	app.Post("/orders", handler.PlaceOrder)
	app.Get("/users/:id/orders", handler.GetOrdersByUser)
}
