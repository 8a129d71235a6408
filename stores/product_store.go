package stores

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adwaith85/project-Ecommerce/configs"
	"github.com/adwaith85/project-Ecommerce/models"
	"github.com/adwaith85/project-Ecommerce/services/orders"
)

type ProductStore struct {
	collection *mongo.Collection
}

func NewProductStore(client *mongo.Client) *ProductStore {
	return &ProductStore{collection: configs.GetCollection(client, "products")}
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "product", Ref: id.Hex()}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "find product", Err: err}
	}
	return &product, nil
}

// Search filters products by name and/or category. A search term matches
// the product name or any of the given category ids (categories whose name
// matched the same term, resolved by the caller). The term is quoted so
// user input cannot break the regex.
func (s *ProductStore) Search(ctx context.Context, search string, matchedCategoryIDs []primitive.ObjectID, category *primitive.ObjectID) ([]models.Product, error) {
	filter := bson.M{}
	if search = strings.TrimSpace(search); search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		or := []bson.M{{"name": regex}}
		if len(matchedCategoryIDs) > 0 {
			or = append(or, bson.M{"category": bson.M{"$in": matchedCategoryIDs}})
		}
		filter["$or"] = or
	}
	if category != nil {
		filter["category"] = *category
	}

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, &orders.PersistenceError{Op: "search products", Err: err}
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, &orders.PersistenceError{Op: "decode products", Err: err}
	}
	return products, nil
}

func (s *ProductStore) Insert(ctx context.Context, product *models.Product) error {
	res, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return &orders.PersistenceError{Op: "insert product", Err: err}
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) error {
	set := bson.M{
		"name":     product.Name,
		"image":    product.Image,
		"price":    product.Price,
		"category": product.Category,
	}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return &orders.PersistenceError{Op: "update product", Err: err}
	}
	if res.MatchedCount == 0 {
		return &orders.NotFoundError{Resource: "product", Ref: id.Hex()}
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return &orders.PersistenceError{Op: "delete product", Err: err}
	}
	return nil
}
