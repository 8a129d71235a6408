// Package cashfree is a thin client for the Cashfree PG REST API. It only
// covers the two calls the order flow needs: creating a payment session and
// listing an order's payment records.
package cashfree

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adwaith85/project-Ecommerce/services/orders"
)

const apiVersion = "2023-08-01"

// requestTimeout bounds every gateway call; a slow or unreachable gateway
// surfaces as a GatewayError instead of hanging the request.
const requestTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("accept", "application/json").
		SetHeader("x-client-id", clientID).
		SetHeader("x-client-secret", clientSecret).
		SetHeader("x-api-version", apiVersion)
	return &Client{http: httpClient}
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
}

type createOrderResponse struct {
	CfOrderID        string `json:"cf_order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

// CreateOrder opens a payment session keyed by our order id. Cashfree
// treats order_id as unique and rejects a duplicate active session itself.
func (c *Client) CreateOrder(ctx context.Context, orderID string, amount float64, currency string, customer orders.GatewayCustomer) (orders.GatewaySession, error) {
	body := createOrderRequest{
		OrderID:       orderID,
		OrderAmount:   amount,
		OrderCurrency: currency,
		CustomerDetails: customerDetails{
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
		},
	}
	var out createOrderResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		SetResult(&out).
		Post("/pg/orders")
	if err != nil {
		return orders.GatewaySession{}, &orders.GatewayError{Op: "create order", Err: err}
	}
	if resp.IsError() {
		return orders.GatewaySession{}, &orders.GatewayError{Op: "create order", StatusCode: resp.StatusCode(), Payload: resp.Body()}
	}
	return orders.GatewaySession{GatewayOrderID: out.CfOrderID, PaymentSessionID: out.PaymentSessionID}, nil
}

type paymentRecord struct {
	PaymentStatus string    `json:"payment_status"`
	PaymentAmount float64   `json:"payment_amount"`
	PaymentTime   time.Time `json:"payment_time"`
}

// ListPayments returns the gateway's payment records for the order,
// most recent first as Cashfree sends them.
func (c *Client) ListPayments(ctx context.Context, orderID string) ([]orders.GatewayPayment, error) {
	var records []paymentRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&records).
		Get("/pg/orders/" + orderID + "/payments")
	if err != nil {
		return nil, &orders.GatewayError{Op: "list payments", Err: err}
	}
	if resp.IsError() {
		return nil, &orders.GatewayError{Op: "list payments", StatusCode: resp.StatusCode(), Payload: resp.Body()}
	}
	payments := make([]orders.GatewayPayment, 0, len(records))
	for _, r := range records {
		payments = append(payments, orders.GatewayPayment{
			Status: r.PaymentStatus,
			Amount: r.PaymentAmount,
			Time:   r.PaymentTime,
		})
	}
	return payments, nil
}
