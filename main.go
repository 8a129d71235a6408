package main

import (
	"log"
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/adwaith85/project-Ecommerce/configs"
	accountController "github.com/adwaith85/project-Ecommerce/controllers/accounts"
	authController "github.com/adwaith85/project-Ecommerce/controllers/auth"
	categoryController "github.com/adwaith85/project-Ecommerce/controllers/categories"
	orderController "github.com/adwaith85/project-Ecommerce/controllers/orders"
	paymentController "github.com/adwaith85/project-Ecommerce/controllers/payments"
	productsController "github.com/adwaith85/project-Ecommerce/controllers/products"
	"github.com/adwaith85/project-Ecommerce/gateway/cashfree"
	"github.com/adwaith85/project-Ecommerce/metrics"
	"github.com/adwaith85/project-Ecommerce/routes"
	"github.com/adwaith85/project-Ecommerce/services/orders"
	"github.com/adwaith85/project-Ecommerce/stores"
)

func main() {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	client := configs.ConnectDB()

	userStore := stores.NewUserStore(client)
	productStore := stores.NewProductStore(client)
	categoryStore := stores.NewCategoryStore(client)
	orderStore := stores.NewOrderStore(client)

	gateway := cashfree.NewClient(
		configs.EnvCashfreeBaseURL(),
		configs.EnvCashfreeClientId(),
		configs.EnvCashfreeClientSecret(),
	)
	manager := orders.NewManager(orderStore, productStore, userStore, gateway)

	serverMetrics := metrics.NewServerMetrics("api")
	app.Use(metrics.Middleware(serverMetrics))
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	if err := os.MkdirAll("./uploads", 0o755); err != nil {
		log.Fatal(err)
	}
	app.Static("/uploads", "./uploads")

	routes.AuthRoutes(app, authController.NewController(userStore, orderStore))
	routes.AccountRoutes(app, accountController.NewController(userStore))
	routes.ProductsRoutes(app, productsController.NewController(productStore, categoryStore))
	routes.CategoryRoutes(app, categoryController.NewController(categoryStore))
	routes.OrderRoutes(app, orderController.NewController(manager, orderStore, userStore))
	routes.PaymentRoutes(app, paymentController.NewController(manager))

	log.Fatal(app.Listen(":" + configs.EnvPort()))
}
