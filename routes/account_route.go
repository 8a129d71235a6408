package routes

import (
	"github.com/gofiber/fiber/v2"

	accountController "github.com/adwaith85/project-Ecommerce/controllers/accounts"
	"github.com/adwaith85/project-Ecommerce/middlewares"
)

func AccountRoutes(app *fiber.App, c *accountController.Controller) {
	app.Get("/getUser", middlewares.AuthMiddleware, c.GetUser)
	app.Put("/updateUser", middlewares.AuthMiddleware, c.UpdateUser)
	app.Post("/saveCart", middlewares.AuthMiddleware, c.SaveCart)
}
