package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/adwaith85/project-Ecommerce/configs"
	"github.com/adwaith85/project-Ecommerce/models"
	"github.com/adwaith85/project-Ecommerce/responses"
	"github.com/adwaith85/project-Ecommerce/services/orders"
	"github.com/adwaith85/project-Ecommerce/stores"
)

type Controller struct {
	Users  *stores.UserStore
	Orders *stores.OrderStore
}

func NewController(users *stores.UserStore, orderStore *stores.OrderStore) *Controller {
	return &Controller{Users: users, Orders: orderStore}
}

func (ctl *Controller) Register(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Number   string `json:"number"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}
	if reqBody.Email == "" || reqBody.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	_, err := ctl.Users.FindByEmail(ctx, reqBody.Email)
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	}
	var notFound *orders.NotFoundError
	if !errors.As(err, &notFound) {
		return responses.Error(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error hashing password"})
	}

	now := time.Now()
	newUser := models.User{
		Role:      models.RoleUser,
		Name:      reqBody.Name,
		Email:     reqBody.Email,
		Number:    reqBody.Number,
		Password:  string(hashedPassword),
		Status:    models.StatusLogout,
		Cart:      []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ctl.Users.Insert(ctx, &newUser); err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Registration successful"})
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	user, err := ctl.Users.FindByEmail(ctx, reqBody.Email)
	var notFound *orders.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No user found"})
	}
	if err != nil {
		return responses.Error(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqBody.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Wrong password"})
	}

	token, err := createJwt(user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error while generating jwt token"})
	}

	// Token validity is per-session: logging in here does not touch any
	// other account's session state.
	if err := ctl.Users.SetStatus(ctx, user.Email, models.StatusLogin); err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "login done",
		"token":  token,
	})
}

func createJwt(email, role string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.EnvJwtSecret()))
}

func (ctl *Controller) Logout(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	email, _ := c.Locals("email").(string)

	// The client may send a final cart snapshot with the logout request.
	var reqBody struct {
		Cart []models.CartItem `json:"cart"`
	}
	if err := c.BodyParser(&reqBody); err == nil && reqBody.Cart != nil {
		if err := ctl.Users.SaveCart(ctx, email, reqBody.Cart, time.Now()); err != nil {
			return responses.Error(c, err)
		}
	}

	if err := ctl.Users.SetStatus(ctx, email, models.StatusLogout); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logout successful"})
}

// GetAllUsers is the admin listing, with each user's order count attached.
func (ctl *Controller) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	users, err := ctl.Users.List(ctx)
	if err != nil {
		return responses.Error(c, err)
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		orderCount, err := ctl.Orders.CountByUser(ctx, user.Id)
		if err != nil {
			return responses.Error(c, err)
		}
		result = append(result, fiber.Map{
			"_id":          user.Id,
			"role":         user.Role,
			"name":         user.Name,
			"email":        user.Email,
			"number":       user.Number,
			"status":       user.Status,
			"profileImage": user.ProfileImage,
			"createdAt":    user.CreatedAt,
			"orderCount":   orderCount,
		})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (ctl *Controller) DeleteUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}
	if err := ctl.Users.Delete(ctx, id); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted"})
}
