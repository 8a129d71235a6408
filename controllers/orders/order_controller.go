package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adwaith85/project-Ecommerce/models"
	"github.com/adwaith85/project-Ecommerce/responses"
	"github.com/adwaith85/project-Ecommerce/services/orders"
	"github.com/adwaith85/project-Ecommerce/stores"
)

type Controller struct {
	Manager *orders.Manager
	Store   *stores.OrderStore
	Users   *stores.UserStore
}

func NewController(manager *orders.Manager, store *stores.OrderStore, users *stores.UserStore) *Controller {
	return &Controller{Manager: manager, Store: store, Users: users}
}

// CreateOrder places an order from the client's cart snapshot and the
// shipping form. Pricing comes from the catalog, not the request.
func (ctl *Controller) CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	email, _ := c.Locals("email").(string)
	user, err := ctl.Users.FindByEmail(ctx, email)
	if err != nil {
		return responses.Error(c, err)
	}

	var reqBody struct {
		orders.ShippingInfo
		OrderItems []orders.LineItem `json:"orderItems"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	order, err := ctl.Manager.Create(ctx, user.Id, reqBody.OrderItems, reqBody.ShippingInfo)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (ctl *Controller) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	email, _ := c.Locals("email").(string)
	user, err := ctl.Users.FindByEmail(ctx, email)
	if err != nil {
		return responses.Error(c, err)
	}

	list, err := ctl.Store.ListByUser(ctx, user.Id)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

func (ctl *Controller) GetAllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	list, err := ctl.Store.ListAll(ctx)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// UpdateStatus is the admin override for offline orders and cancellations.
// Transitions are forward-only; the store pins the status the admin saw so
// a concurrent payment verification cannot be clobbered.
func (ctl *Controller) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID format"})
	}

	var reqBody struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}
	next, ok := models.ParseOrderStatus(reqBody.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown order status"})
	}

	order, err := ctl.Store.FindByID(ctx, id)
	if err != nil {
		return responses.Error(c, err)
	}
	if !order.Status.CanTransitionTo(next) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Order cannot move from " + string(order.Status) + " to " + string(next),
		})
	}

	updated, err := ctl.Store.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
