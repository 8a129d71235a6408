package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adwaith85/project-Ecommerce/responses"
	"github.com/adwaith85/project-Ecommerce/services/orders"
)

type Controller struct {
	Manager *orders.Manager
}

func NewController(manager *orders.Manager) *Controller {
	return &Controller{Manager: manager}
}

// CreatePayment opens a Cashfree payment session for an existing order and
// hands the session id back for the browser SDK.
func (ctl *Controller) CreatePayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	// Older clients send order_id or id instead of orderId.
	var reqBody struct {
		OrderID    string `json:"orderId"`
		OrderIDAlt string `json:"order_id"`
		ID         string `json:"id"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	orderID := reqBody.OrderID
	if orderID == "" {
		orderID = reqBody.OrderIDAlt
	}
	if orderID == "" {
		orderID = reqBody.ID
	}
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Order ID (orderId) is required in the request body.",
		})
	}

	session, err := ctl.Manager.InitiatePayment(ctx, orderID)
	if err != nil {
		return paymentError(c, err, "Failed to create Cashfree payment order")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":            true,
		"message":            "Payment initiated with Cashfree",
		"cf_order_id":        session.GatewayOrderID,
		"payment_session_id": session.PaymentSessionID,
	})
}

// VerifyPayment polls the gateway for the order's payment result. A payment
// that has not landed yet is reported as success=false with a retryable
// message, not as a server error.
func (ctl *Controller) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	result, err := ctl.Manager.VerifyPayment(ctx, c.Params("orderId"))
	if err != nil {
		return paymentError(c, err, "Failed to verify payment with Cashfree")
	}

	if !result.Paid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Payment not successful yet or pending. If you just paid, please wait a moment.",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Payment successful. Order updated to 'On the way'.",
		"order":   result.Order,
	})
}

// paymentError keeps the gateway's own error payload visible to the client
// for diagnostics while mapping everything else onto the usual statuses.
func paymentError(c *fiber.Ctx, err error, message string) error {
	body := fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	}
	var gerr *orders.GatewayError
	if errors.As(err, &gerr) && len(gerr.Payload) > 0 {
		body["error"] = json.RawMessage(gerr.Payload)
	}
	return c.Status(responses.HTTPStatus(err)).JSON(body)
}
