package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/adwaith85/project-Ecommerce/controllers/orders"
	"github.com/adwaith85/project-Ecommerce/middlewares"
)

func OrderRoutes(app *fiber.App, c *orderController.Controller) {
	app.Post("/order", middlewares.AuthMiddleware, c.CreateOrder)
	app.Get("/order", middlewares.AuthMiddleware, c.GetOrders)

	app.Get("/admin/orders", middlewares.AuthMiddleware, middlewares.AdminOnly, c.GetAllOrders)
	app.Put("/admin/orders/:id/status", middlewares.AuthMiddleware, middlewares.AdminOnly, c.UpdateStatus)
}
