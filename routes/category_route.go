package routes

import (
	"github.com/gofiber/fiber/v2"

	categoryController "github.com/adwaith85/project-Ecommerce/controllers/categories"
	"github.com/adwaith85/project-Ecommerce/middlewares"
)

func CategoryRoutes(app *fiber.App, c *categoryController.Controller) {
	app.Get("/category", c.GetCategories)

	app.Post("/category", middlewares.AuthMiddleware, middlewares.AdminOnly, c.AddCategory)
	app.Put("/category/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, c.UpdateCategory)
	app.Delete("/category/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, c.DeleteCategory)
}
