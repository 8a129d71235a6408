package orders

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adwaith85/project-Ecommerce/models"
)

// Currency is fixed for this deployment. Amounts are rupees, not paise.
const Currency = "INR"

// Placeholder customer details sent to the gateway when the order snapshot
// and the owning user carry none.
const (
	placeholderPhone = "9999999999"
	placeholderEmail = "customer@gmail.com"
)

const paymentSuccess = "SUCCESS"

// Store persists orders. Implementations report unknown references as
// *NotFoundError and other failures as *PersistenceError.
type Store interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	SetGatewayOrderID(ctx context.Context, id primitive.ObjectID, gatewayOrderID string) error
	// MarkPaid flips the order to Paid/Online/On the way only while it is
	// still Not Paid, and returns the current document either way.
	MarkPaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time) (*models.Order, error)
}

// Catalog resolves product references at order-creation time.
type Catalog interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// Directory looks up the order's owner for gateway customer details.
type Directory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type GatewayCustomer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// GatewaySession identifies one payment-collection attempt at the gateway.
// PaymentSessionID is what the browser SDK needs to open checkout.
type GatewaySession struct {
	GatewayOrderID   string
	PaymentSessionID string
}

type GatewayPayment struct {
	Status string
	Amount float64
	Time   time.Time
}

// Gateway is the payment-processor boundary. Implementations return
// *GatewayError for failed or rejected calls.
type Gateway interface {
	CreateOrder(ctx context.Context, orderID string, amount float64, currency string, customer GatewayCustomer) (GatewaySession, error)
	ListPayments(ctx context.Context, orderID string) ([]GatewayPayment, error)
}

// LineItem is one entry of the client's cart snapshot.
type LineItem struct {
	ProductID primitive.ObjectID `json:"pid"`
	Quantity  int                `json:"qty"`
}

// ShippingInfo is the address snapshot captured on the order.
type ShippingInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
	Number   string `json:"number"`
}

// VerificationResult is the outcome of one verification poll. Paid false
// means the gateway has no success record yet; the caller may retry.
type VerificationResult struct {
	Order *models.Order
	Paid  bool
}

// Manager owns the order status state machine: it creates orders from cart
// snapshots, opens payment sessions with the gateway and applies the
// verified-payment transition. It never retries gateway calls itself.
type Manager struct {
	store     Store
	catalog   Catalog
	directory Directory
	gateway   Gateway
	now       func() time.Time
}

func NewManager(store Store, catalog Catalog, directory Directory, gateway Gateway) *Manager {
	return &Manager{
		store:     store,
		catalog:   catalog,
		directory: directory,
		gateway:   gateway,
		now:       time.Now,
	}
}

// Create validates the cart snapshot, prices it against the catalog and
// persists a new Pending order. The total is computed once, here, and never
// recomputed later.
func (m *Manager) Create(ctx context.Context, ownerID primitive.ObjectID, items []LineItem, shipping ShippingInfo) (*models.Order, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Field: "orderItems", Reason: "cart is empty"}
	}
	if strings.TrimSpace(shipping.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "name is required"}
	}
	if strings.TrimSpace(shipping.Address) == "" {
		return nil, &ValidationError{Field: "address", Reason: "address is required"}
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, &ValidationError{Field: "qty", Reason: "quantity must be at least 1"}
		}
		product, err := m.catalog.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		line := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		orderItems = append(orderItems, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	now := m.now()
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        ownerID,
		Name:          shipping.Name,
		Address:       shipping.Address,
		District:      shipping.District,
		Pincode:       shipping.Pincode,
		Number:        shipping.Number,
		OrderItems:    orderItems,
		TotalPrice:    total.InexactFloat64(),
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentNotPaid,
		PaymentMethod: models.PaymentOffline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := m.store.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// InitiatePayment opens a payment session with the gateway for the order,
// keyed by the order's own id, and stores the returned gateway order id.
// Calling it again simply re-issues a session and overwrites the stored id;
// the gateway dedups on order_id and rejects a duplicate active session
// itself. On gateway failure the order is left untouched.
func (m *Manager) InitiatePayment(ctx context.Context, orderID string) (GatewaySession, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return GatewaySession{}, &ValidationError{Field: "orderId", Reason: "invalid order id"}
	}
	order, err := m.store.FindByID(ctx, oid)
	if err != nil {
		return GatewaySession{}, err
	}

	customer := GatewayCustomer{
		ID:    order.UserID.Hex(),
		Name:  order.Name,
		Phone: order.Number,
	}
	if owner, err := m.directory.FindByID(ctx, order.UserID); err == nil {
		customer.Email = owner.Email
		if customer.Phone == "" {
			customer.Phone = owner.Number
		}
		if customer.Name == "" {
			customer.Name = owner.Name
		}
	}
	customer.Phone = NormalizePhone(customer.Phone)
	if customer.Email == "" {
		customer.Email = placeholderEmail
	}
	if customer.Name == "" {
		customer.Name = "Customer"
	}

	session, err := m.gateway.CreateOrder(ctx, order.ID.Hex(), order.TotalPrice, Currency, customer)
	if err != nil {
		return GatewaySession{}, err
	}
	if err := m.store.SetGatewayOrderID(ctx, order.ID, session.GatewayOrderID); err != nil {
		return GatewaySession{}, err
	}
	return session, nil
}

// VerifyPayment polls the gateway for the order's payment records and, when
// one reports success, applies the paid transition: Paid, Online, On the
// way, paidAt set. The order may be referenced by its own id or by the
// gateway order id, since the client may only hold one of the two. An
// already-paid order verifies as a no-op success, so the call is safe to
// repeat.
func (m *Manager) VerifyPayment(ctx context.Context, ref string) (VerificationResult, error) {
	order, err := m.resolve(ctx, ref)
	if err != nil {
		return VerificationResult{}, err
	}
	if order.GatewayOrderID == "" {
		return VerificationResult{}, &PreconditionError{Reason: "payment was never initiated for this order"}
	}
	if order.PaymentStatus == models.PaymentPaid {
		return VerificationResult{Order: order, Paid: true}, nil
	}

	payments, err := m.gateway.ListPayments(ctx, order.ID.Hex())
	if err != nil {
		return VerificationResult{}, err
	}
	for _, p := range payments {
		if p.Status == paymentSuccess {
			updated, err := m.store.MarkPaid(ctx, order.ID, m.now())
			if err != nil {
				return VerificationResult{}, err
			}
			return VerificationResult{Order: updated, Paid: true}, nil
		}
	}
	return VerificationResult{Order: order, Paid: false}, nil
}

func (m *Manager) resolve(ctx context.Context, ref string) (*models.Order, error) {
	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		return m.store.FindByID(ctx, oid)
	}
	return m.store.FindByGatewayOrderID(ctx, ref)
}

// NormalizePhone strips everything but digits and keeps the last ten, which
// drops a leading "91"/"+91" country code. An empty result falls back to
// the placeholder the gateway accepts for sandbox customers.
func NormalizePhone(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()
	if phone == "" {
		return placeholderPhone
	}
	if len(phone) > 10 {
		phone = phone[len(phone)-10:]
	}
	return phone
}
