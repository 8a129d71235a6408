package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adwaith85/project-Ecommerce/models"
	"github.com/adwaith85/project-Ecommerce/responses"
	"github.com/adwaith85/project-Ecommerce/stores"
)

type Controller struct {
	Categories *stores.CategoryStore
}

func NewController(categories *stores.CategoryStore) *Controller {
	return &Controller{Categories: categories}
}

func (ctl *Controller) GetCategories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	categories, err := ctl.Categories.List(ctx)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

func (ctl *Controller) AddCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error parsing category data"})
	}
	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category name is required"})
	}

	if err := ctl.Categories.Insert(ctx, &category); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (ctl *Controller) UpdateCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID format"})
	}

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error parsing category data"})
	}

	if err := ctl.Categories.Update(ctx, id, &category); err != nil {
		return responses.Error(c, err)
	}
	category.ID = id
	return c.Status(fiber.StatusOK).JSON(category)
}

func (ctl *Controller) DeleteCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID format"})
	}
	if err := ctl.Categories.Delete(ctx, id); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Category deleted"})
}
