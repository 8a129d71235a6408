package routes

import (
	"github.com/gofiber/fiber/v2"

	paymentController "github.com/adwaith85/project-Ecommerce/controllers/payments"
	"github.com/adwaith85/project-Ecommerce/middlewares"
)

func PaymentRoutes(app *fiber.App, c *paymentController.Controller) {
	app.Post("/create-payment", middlewares.AuthMiddleware, c.CreatePayment)
	app.Get("/verify-payment/:orderId", middlewares.AuthMiddleware, c.VerifyPayment)
}
