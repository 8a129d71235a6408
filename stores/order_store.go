package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adwaith85/project-Ecommerce/configs"
	"github.com/adwaith85/project-Ecommerce/models"
	"github.com/adwaith85/project-Ecommerce/services/orders"
)

// OrderStore is the Mongo persistence collaborator for orders. Transitions
// are single-document conditional updates so concurrent verify/initiate
// calls cannot lose writes.
type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(client *mongo.Client) *OrderStore {
	return &OrderStore{collection: configs.GetCollection(client, "orders")}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if _, err := s.collection.InsertOne(ctx, order); err != nil {
		return &orders.PersistenceError{Op: "insert order", Err: err}
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "order", Ref: id.Hex()}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "find order", Err: err}
	}
	return &order, nil
}

func (s *OrderStore) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"cf_order_id": gatewayOrderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "order", Ref: gatewayOrderID}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "find order by gateway id", Err: err}
	}
	return &order, nil
}

func (s *OrderStore) SetGatewayOrderID(ctx context.Context, id primitive.ObjectID, gatewayOrderID string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"cf_order_id": gatewayOrderID, "updatedAt": time.Now()}},
	)
	if err != nil {
		return &orders.PersistenceError{Op: "store gateway order id", Err: err}
	}
	if res.MatchedCount == 0 {
		return &orders.NotFoundError{Resource: "order", Ref: id.Hex()}
	}
	return nil
}

// MarkPaid applies the verified-payment transition atomically: the update
// only matches while the order is still Not Paid, so a racing verify call
// cannot set paidAt twice. Either way the current document is returned.
func (s *OrderStore) MarkPaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentPaid,
		"paymentMethod": models.PaymentOnline,
		"status":        models.OrderOnTheWay,
		"paidAt":        paidAt,
		"updatedAt":     paidAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "paymentStatus": models.PaymentNotPaid},
		update, opts,
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Lost the race to another verification; the stored document is
		// already paid.
		return s.FindByID(ctx, id)
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "mark order paid", Err: err}
	}
	return &order, nil
}

// UpdateStatus is the administrative override. The filter pins the status
// the caller saw, so a concurrent transition fails the update instead of
// being silently overwritten.
func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus) (*models.Order, error) {
	now := time.Now()
	set := bson.M{"status": to, "updatedAt": now}
	if to == models.OrderDelivered {
		set["deliveredAt"] = now
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set}, opts,
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.PreconditionError{Reason: "order status changed concurrently, reload and retry"}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "update order status", Err: err}
	}
	return &order, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *OrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, &orders.PersistenceError{Op: "list orders", Err: err}
	}
	defer cursor.Close(ctx)

	results := []models.Order{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, &orders.PersistenceError{Op: "decode orders", Err: err}
	}
	return results, nil
}

func (s *OrderStore) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, &orders.PersistenceError{Op: "count orders", Err: err}
	}
	return count, nil
}
