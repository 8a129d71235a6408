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

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(client *mongo.Client) *UserStore {
	return &UserStore{collection: configs.GetCollection(client, "users")}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		return &orders.PersistenceError{Op: "insert user", Err: err}
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "user", Ref: id.Hex()}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "find user", Err: err}
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "user", Ref: email}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "find user by email", Err: err}
	}
	return &user, nil
}

// UpdateProfile applies the given profile fields and returns the updated
// document.
func (s *UserStore) UpdateProfile(ctx context.Context, email string, set bson.M) (*models.User, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "user", Ref: email}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "update user", Err: err}
	}
	return &user, nil
}

func (s *UserStore) SetStatus(ctx context.Context, email, status string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return &orders.PersistenceError{Op: "set user status", Err: err}
	}
	if res.MatchedCount == 0 {
		return &orders.NotFoundError{Resource: "user", Ref: email}
	}
	return nil
}

// SaveCart overwrites the user's cart snapshot. Last write wins; the
// timestamp is stored so clients can tell which device wrote it.
func (s *UserStore) SaveCart(ctx context.Context, email string, cart []models.CartItem, at time.Time) error {
	if cart == nil {
		cart = []models.CartItem{}
	}
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"cart": cart, "cartUpdatedAt": at, "updatedAt": at}},
	)
	if err != nil {
		return &orders.PersistenceError{Op: "save cart", Err: err}
	}
	if res.MatchedCount == 0 {
		return &orders.NotFoundError{Resource: "user", Ref: email}
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &orders.PersistenceError{Op: "list users", Err: err}
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, &orders.PersistenceError{Op: "decode users", Err: err}
	}
	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return &orders.PersistenceError{Op: "delete user", Err: err}
	}
	return nil
}
