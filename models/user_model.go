package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusLogin  = "Login"
	StatusLogout = "Logout"
)

// CartItem mirrors what the browser keeps in local storage. The server
// only stores the snapshot; the cart itself lives client-side.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type User struct {
	Id           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Number       string             `bson:"number,omitempty" json:"number,omitempty"`
	Password     string             `bson:"password" json:"-"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Status       string             `bson:"status" json:"status"`
	Cart         []CartItem         `bson:"cart" json:"cart"`
	// CartUpdatedAt lets clients detect which device wrote the snapshot
	// last; saves are last-write-wins.
	CartUpdatedAt *time.Time `bson:"cartUpdatedAt,omitempty" json:"cartUpdatedAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}
