package responses

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/adwaith85/project-Ecommerce/services/orders"
)

// HTTPStatus maps a service error to the status it should surface as.
// Gateway errors pass the processor's own status through when one was
// reported, so callers see what the gateway said.
func HTTPStatus(err error) int {
	var (
		validation   *orders.ValidationError
		notFound     *orders.NotFoundError
		precondition *orders.PreconditionError
		gateway      *orders.GatewayError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &precondition):
		return fiber.StatusBadRequest
	case errors.As(err, &gateway):
		if gateway.StatusCode > 0 {
			return gateway.StatusCode
		}
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Error renders a service error as the uniform JSON error body.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
