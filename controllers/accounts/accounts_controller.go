package controllers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adwaith85/project-Ecommerce/models"
	"github.com/adwaith85/project-Ecommerce/responses"
	"github.com/adwaith85/project-Ecommerce/stores"
)

const uploadDir = "./uploads"

type Controller struct {
	Users *stores.UserStore
}

func NewController(users *stores.UserStore) *Controller {
	return &Controller{Users: users}
}

func (ctl *Controller) GetUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	email, _ := c.Locals("email").(string)
	user, err := ctl.Users.FindByEmail(ctx, email)
	if err != nil {
		return responses.Error(c, err)
	}

	if user.Status != models.StatusLogin {
		if err := ctl.Users.SetStatus(ctx, email, models.StatusLogin); err != nil {
			return responses.Error(c, err)
		}
		user.Status = models.StatusLogin
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateUser handles the multipart profile form: name, number and an
// optional profile image saved under ./uploads.
func (ctl *Controller) UpdateUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	email, _ := c.Locals("email").(string)

	set := bson.M{}
	if name := c.FormValue("name"); name != "" && name != "undefined" {
		set["name"] = name
	}
	if number := c.FormValue("number"); number != "" && number != "undefined" {
		set["number"] = number
	}

	if file, err := c.FormFile("profileImage"); err == nil {
		// Stored under a fresh name so uploads cannot collide or
		// traverse out of the uploads directory.
		filename := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveFile(file, filepath.Join(uploadDir, filename)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save profile image"})
		}
		set["profileImage"] = "/uploads/" + filename
	}

	if len(set) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No changes provided"})
	}

	user, err := ctl.Users.UpdateProfile(ctx, email, set)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// SaveCart overwrites the stored cart snapshot. The cart itself lives in
// the browser; writes are last-write-wins and the returned timestamp lets
// a client notice when another device wrote after it.
func (ctl *Controller) SaveCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	email, _ := c.Locals("email").(string)

	var reqBody struct {
		Cart []models.CartItem `json:"cart"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	savedAt := time.Now()
	if err := ctl.Users.SaveCart(ctx, email, reqBody.Cart, savedAt); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Cart saved",
		"cartUpdatedAt": savedAt,
	})
}
