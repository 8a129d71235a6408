package routes

import (
	"github.com/gofiber/fiber/v2"

	productsController "github.com/adwaith85/project-Ecommerce/controllers/products"
	"github.com/adwaith85/project-Ecommerce/middlewares"
)

func ProductsRoutes(app *fiber.App, c *productsController.Controller) {
	app.Get("/products", c.GetProducts)
	app.Get("/cateItem/:name", c.GetByCategoryName)

	// Admin catalog management
	app.Post("/products", middlewares.AuthMiddleware, middlewares.AdminOnly, c.AddProduct)
	app.Put("/products/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, c.UpdateProduct)
	app.Delete("/products/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, c.DeleteProduct)
}
