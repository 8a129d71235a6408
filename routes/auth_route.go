package routes

import (
	"github.com/gofiber/fiber/v2"

	authController "github.com/adwaith85/project-Ecommerce/controllers/auth"
	"github.com/adwaith85/project-Ecommerce/middlewares"
)

func AuthRoutes(app *fiber.App, c *authController.Controller) {
	app.Post("/register", c.Register)
	app.Post("/login", c.Login)
	app.Post("/logout", middlewares.AuthMiddleware, c.Logout)

	// Admin routes
	app.Get("/admin/users", middlewares.AuthMiddleware, middlewares.AdminOnly, c.GetAllUsers)
	app.Delete("/admin/users/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, c.DeleteUser)
}
