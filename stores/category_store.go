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

type CategoryStore struct {
	collection *mongo.Collection
}

func NewCategoryStore(client *mongo.Client) *CategoryStore {
	return &CategoryStore{collection: configs.GetCollection(client, "categories")}
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, &orders.PersistenceError{Op: "list categories", Err: err}
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, &orders.PersistenceError{Op: "decode categories", Err: err}
	}
	return categories, nil
}

func (s *CategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &orders.NotFoundError{Resource: "category", Ref: name}
	}
	if err != nil {
		return nil, &orders.PersistenceError{Op: "find category", Err: err}
	}
	return &category, nil
}

// FindIDsByName returns ids of categories whose name matches the search
// term, for product search across category names.
func (s *CategoryStore) FindIDsByName(ctx context.Context, search string) ([]primitive.ObjectID, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, nil
	}
	regex := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	cursor, err := s.collection.Find(ctx, bson.M{"name": regex})
	if err != nil {
		return nil, &orders.PersistenceError{Op: "match categories", Err: err}
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, &orders.PersistenceError{Op: "decode categories", Err: err}
	}
	ids := make([]primitive.ObjectID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (s *CategoryStore) Insert(ctx context.Context, category *models.Category) error {
	res, err := s.collection.InsertOne(ctx, category)
	if err != nil {
		return &orders.PersistenceError{Op: "insert category", Err: err}
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, id primitive.ObjectID, category *models.Category) error {
	set := bson.M{"name": category.Name, "image": category.Image}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return &orders.PersistenceError{Op: "update category", Err: err}
	}
	if res.MatchedCount == 0 {
		return &orders.NotFoundError{Resource: "category", Ref: id.Hex()}
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return &orders.PersistenceError{Op: "delete category", Err: err}
	}
	return nil
}
