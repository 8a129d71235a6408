package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adwaith85/project-Ecommerce/models"
)

type fakeStore struct {
	orders        map[primitive.ObjectID]*models.Order
	insertErr     error
	setSessionErr error
	markPaidCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (s *fakeStore) Insert(_ context.Context, order *models.Order) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, &NotFoundError{Resource: "order", Ref: id.Hex()}
	}
	cp := *order
	return &cp, nil
}

func (s *fakeStore) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.Order, error) {
	for _, order := range s.orders {
		if order.GatewayOrderID == gatewayOrderID {
			cp := *order
			return &cp, nil
		}
	}
	return nil, &NotFoundError{Resource: "order", Ref: gatewayOrderID}
}

func (s *fakeStore) SetGatewayOrderID(_ context.Context, id primitive.ObjectID, gatewayOrderID string) error {
	if s.setSessionErr != nil {
		return s.setSessionErr
	}
	order, ok := s.orders[id]
	if !ok {
		return &NotFoundError{Resource: "order", Ref: id.Hex()}
	}
	order.GatewayOrderID = gatewayOrderID
	return nil
}

func (s *fakeStore) MarkPaid(_ context.Context, id primitive.ObjectID, paidAt time.Time) (*models.Order, error) {
	s.markPaidCalls++
	order, ok := s.orders[id]
	if !ok {
		return nil, &NotFoundError{Resource: "order", Ref: id.Hex()}
	}
	if order.PaymentStatus != models.PaymentPaid {
		at := paidAt
		order.PaymentStatus = models.PaymentPaid
		order.PaymentMethod = models.PaymentOnline
		order.Status = models.OrderOnTheWay
		order.PaidAt = &at
		order.UpdatedAt = at
	}
	cp := *order
	return &cp, nil
}

type fakeCatalog struct {
	products map[primitive.ObjectID]*models.Product
}

func (c *fakeCatalog) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := c.products[id]
	if !ok {
		return nil, &NotFoundError{Resource: "product", Ref: id.Hex()}
	}
	return product, nil
}

type fakeDirectory struct {
	users map[primitive.ObjectID]*models.User
}

func (d *fakeDirectory) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, &NotFoundError{Resource: "user", Ref: id.Hex()}
	}
	return user, nil
}

type gatewayCreateCall struct {
	orderID  string
	amount   float64
	currency string
	customer GatewayCustomer
}

type fakeGateway struct {
	session     GatewaySession
	createErr   error
	payments    []GatewayPayment
	listErr     error
	createCalls []gatewayCreateCall
	listCalls   int
}

func (g *fakeGateway) CreateOrder(_ context.Context, orderID string, amount float64, currency string, customer GatewayCustomer) (GatewaySession, error) {
	g.createCalls = append(g.createCalls, gatewayCreateCall{orderID: orderID, amount: amount, currency: currency, customer: customer})
	if g.createErr != nil {
		return GatewaySession{}, g.createErr
	}
	return g.session, nil
}

func (g *fakeGateway) ListPayments(_ context.Context, _ string) ([]GatewayPayment, error) {
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.payments, nil
}

type fixture struct {
	manager *Manager
	store   *fakeStore
	catalog *fakeCatalog
	users   *fakeDirectory
	gateway *fakeGateway
}

func newFixture() *fixture {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[primitive.ObjectID]*models.Product{}}
	users := &fakeDirectory{users: map[primitive.ObjectID]*models.User{}}
	gateway := &fakeGateway{session: GatewaySession{GatewayOrderID: "cf_1001", PaymentSessionID: "session_abc"}}
	return &fixture{
		manager: NewManager(store, catalog, users, gateway),
		store:   store,
		catalog: catalog,
		users:   users,
		gateway: gateway,
	}
}

func (f *fixture) addProduct(price float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.catalog.products[id] = &models.Product{ID: id, Name: "product", Price: price}
	return id
}

func (f *fixture) placeOrder(t *testing.T, items []LineItem) *models.Order {
	t.Helper()
	order, err := f.manager.Create(context.Background(), primitive.NewObjectID(), items, ShippingInfo{
		Name:    "Anu",
		Address: "12 Beach Road",
		Number:  "+91 98765-43210",
	})
	require.NoError(t, err)
	return order
}

func TestCreateComputesTotalFromCatalogPrices(t *testing.T) {
	f := newFixture()
	productA := f.addProduct(100)
	productB := f.addProduct(49.50)

	order := f.placeOrder(t, []LineItem{
		{ProductID: productA, Quantity: 2},
		{ProductID: productB, Quantity: 1},
	})

	assert.Equal(t, 249.50, order.TotalPrice)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentNotPaid, order.PaymentStatus)
	assert.Equal(t, models.PaymentOffline, order.PaymentMethod)
	assert.Nil(t, order.PaidAt)
	assert.Empty(t, order.GatewayOrderID)

	stored, err := f.store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalPrice, stored.TotalPrice)
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.manager.Create(context.Background(), primitive.NewObjectID(), nil, ShippingInfo{Name: "Anu", Address: "12 Beach Road"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "orderItems", verr.Field)
}

func TestCreateRejectsMissingShippingFields(t *testing.T) {
	f := newFixture()
	product := f.addProduct(10)
	items := []LineItem{{ProductID: product, Quantity: 1}}

	_, err := f.manager.Create(context.Background(), primitive.NewObjectID(), items, ShippingInfo{Address: "12 Beach Road"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = f.manager.Create(context.Background(), primitive.NewObjectID(), items, ShippingInfo{Name: "Anu"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "address", verr.Field)
}

func TestCreateRejectsZeroQuantity(t *testing.T) {
	f := newFixture()
	product := f.addProduct(10)

	_, err := f.manager.Create(context.Background(), primitive.NewObjectID(),
		[]LineItem{{ProductID: product, Quantity: 0}},
		ShippingInfo{Name: "Anu", Address: "12 Beach Road"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "qty", verr.Field)
}

func TestCreateUnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.manager.Create(context.Background(), primitive.NewObjectID(),
		[]LineItem{{ProductID: primitive.NewObjectID(), Quantity: 1}},
		ShippingInfo{Name: "Anu", Address: "12 Beach Road"})

	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "product", nferr.Resource)
}

func TestInitiatePaymentStoresGatewayOrderID(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 2}})

	session, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "cf_1001", session.GatewayOrderID)
	assert.Equal(t, "session_abc", session.PaymentSessionID)

	stored, err := f.store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "cf_1001", stored.GatewayOrderID)

	require.Len(t, f.gateway.createCalls, 1)
	call := f.gateway.createCalls[0]
	assert.Equal(t, order.ID.Hex(), call.orderID)
	assert.Equal(t, 200.0, call.amount)
	assert.Equal(t, "INR", call.currency)
	assert.Equal(t, "9876543210", call.customer.Phone)
}

func TestInitiatePaymentReissuesSession(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})

	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)

	// A retried initiation must not fail locally: it opens a fresh session
	// and overwrites the stored id.
	f.gateway.session = GatewaySession{GatewayOrderID: "cf_2002", PaymentSessionID: "session_def"}
	session, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "cf_2002", session.GatewayOrderID)

	stored, err := f.store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "cf_2002", stored.GatewayOrderID)
	assert.Len(t, f.gateway.createCalls, 2)
}

func TestInitiatePaymentFallsBackToOwnerDetails(t *testing.T) {
	f := newFixture()
	product := f.addProduct(50)
	ownerID := primitive.NewObjectID()
	f.users.users[ownerID] = &models.User{Id: ownerID, Name: "Anu", Email: "anu@example.com", Number: "98765 43210"}

	order, err := f.manager.Create(context.Background(), ownerID,
		[]LineItem{{ProductID: product, Quantity: 1}},
		ShippingInfo{Name: "Anu", Address: "12 Beach Road"})
	require.NoError(t, err)

	_, err = f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)

	require.Len(t, f.gateway.createCalls, 1)
	customer := f.gateway.createCalls[0].customer
	assert.Equal(t, "anu@example.com", customer.Email)
	assert.Equal(t, "9876543210", customer.Phone)
}

func TestInitiatePaymentGatewayFailureLeavesOrderUntouched(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})
	f.gateway.createErr = &GatewayError{Op: "create order", StatusCode: 409, Payload: []byte(`{"message":"duplicate order"}`)}

	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 409, gerr.StatusCode)

	stored, err := f.store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.GatewayOrderID)
}

func TestInitiatePaymentInvalidOrderID(t *testing.T) {
	f := newFixture()

	_, err := f.manager.InitiatePayment(context.Background(), "not-a-hex-id")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestVerifyPaymentBeforeInitiation(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})

	_, err := f.manager.VerifyPayment(context.Background(), order.ID.Hex())

	var perr *PreconditionError
	require.ErrorAs(t, err, &perr)
	assert.Zero(t, f.gateway.listCalls)
}

func TestVerifyPaymentPendingLeavesOrderUnchanged(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})
	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	f.gateway.payments = []GatewayPayment{{Status: "FAILED"}, {Status: "PENDING"}}

	result, err := f.manager.VerifyPayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.False(t, result.Paid)

	stored, err := f.store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)
	assert.Equal(t, models.PaymentNotPaid, stored.PaymentStatus)
	assert.Nil(t, stored.PaidAt)
	assert.Zero(t, f.store.markPaidCalls)
}

func TestVerifyPaymentSuccess(t *testing.T) {
	f := newFixture()
	paidAt := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	f.manager.now = func() time.Time { return paidAt }
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 2}})
	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	f.gateway.payments = []GatewayPayment{{Status: "FAILED"}, {Status: "SUCCESS", Amount: 200}}

	result, err := f.manager.VerifyPayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	require.True(t, result.Paid)

	assert.Equal(t, models.PaymentPaid, result.Order.PaymentStatus)
	assert.Equal(t, models.PaymentOnline, result.Order.PaymentMethod)
	assert.Equal(t, models.OrderOnTheWay, result.Order.Status)
	require.NotNil(t, result.Order.PaidAt)
	assert.Equal(t, paidAt, *result.Order.PaidAt)
}

func TestVerifyPaymentIdempotent(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})
	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	f.gateway.payments = []GatewayPayment{{Status: "SUCCESS"}}

	first, err := f.manager.VerifyPayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	require.True(t, first.Paid)

	second, err := f.manager.VerifyPayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	require.True(t, second.Paid)

	// The second call short-circuits on the already-paid order: no second
	// gateway poll, no second paid transition.
	assert.Equal(t, 1, f.gateway.listCalls)
	assert.Equal(t, 1, f.store.markPaidCalls)
	assert.Equal(t, *first.Order.PaidAt, *second.Order.PaidAt)
}

func TestVerifyPaymentByGatewayOrderID(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})
	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	f.gateway.payments = []GatewayPayment{{Status: "SUCCESS"}}

	result, err := f.manager.VerifyPayment(context.Background(), "cf_1001")
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.Equal(t, order.ID, result.Order.ID)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.manager.VerifyPayment(context.Background(), primitive.NewObjectID().Hex())

	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestVerifyPaymentGatewayFailure(t *testing.T) {
	f := newFixture()
	product := f.addProduct(100)
	order := f.placeOrder(t, []LineItem{{ProductID: product, Quantity: 1}})
	_, err := f.manager.InitiatePayment(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	f.gateway.listErr = &GatewayError{Op: "list payments", StatusCode: 502, Payload: []byte(`{"message":"upstream down"}`)}

	_, err = f.manager.VerifyPayment(context.Background(), order.ID.Hex())

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 502, gerr.StatusCode)

	stored, err := f.store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentNotPaid, stored.PaymentStatus)
}

func TestCreatePersistenceFailure(t *testing.T) {
	f := newFixture()
	product := f.addProduct(10)
	f.store.insertErr = &PersistenceError{Op: "insert order", Err: errors.New("write concern timeout")}

	_, err := f.manager.Create(context.Background(), primitive.NewObjectID(),
		[]LineItem{{ProductID: product, Quantity: 1}},
		ShippingInfo{Name: "Anu", Address: "12 Beach Road"})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
}
