package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Category primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
}
