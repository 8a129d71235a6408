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
	Products   *stores.ProductStore
	Categories *stores.CategoryStore
}

func NewController(products *stores.ProductStore, categories *stores.CategoryStore) *Controller {
	return &Controller{Products: products, Categories: categories}
}

// GetProducts lists the catalog. A search term matches product names and
// category names; a category id narrows to that category.
func (ctl *Controller) GetProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	search := c.Query("search")
	var category *primitive.ObjectID
	if raw := c.Query("category"); raw != "" && raw != "null" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID format"})
		}
		category = &id
	}

	var matchedCategoryIDs []primitive.ObjectID
	if search != "" {
		ids, err := ctl.Categories.FindIDsByName(ctx, search)
		if err != nil {
			return responses.Error(c, err)
		}
		matchedCategoryIDs = ids
	}

	products, err := ctl.Products.Search(ctx, search, matchedCategoryIDs, category)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ctl.populate(ctx, products))
}

// GetByCategoryName lists the products of one category, addressed by name.
func (ctl *Controller) GetByCategoryName(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	category, err := ctl.Categories.FindByName(ctx, c.Params("name"))
	if err != nil {
		return responses.Error(c, err)
	}

	products, err := ctl.Products.Search(ctx, "", nil, &category.ID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ctl.populate(ctx, products))
}

// populate swaps each product's category id for the category document,
// matching what clients expect from the listing endpoints.
func (ctl *Controller) populate(ctx context.Context, products []models.Product) []fiber.Map {
	byID := map[primitive.ObjectID]models.Category{}
	if categories, err := ctl.Categories.List(ctx); err == nil {
		for _, category := range categories {
			byID[category.ID] = category
		}
	}

	result := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		view := fiber.Map{
			"_id":   p.ID,
			"name":  p.Name,
			"image": p.Image,
			"price": p.Price,
		}
		if category, ok := byID[p.Category]; ok {
			view["category"] = category
		}
		result = append(result, view)
	}
	return result
}

// AddProduct is admin-only.
func (ctl *Controller) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error parsing product data"})
	}
	if product.Name == "" || product.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product name and a positive price are required"})
	}

	if err := ctl.Products.Insert(ctx, &product); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (ctl *Controller) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID format"})
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error parsing product data"})
	}

	if err := ctl.Products.Update(ctx, id, &product); err != nil {
		return responses.Error(c, err)
	}
	product.ID = id
	return c.Status(fiber.StatusOK).JSON(product)
}

func (ctl *Controller) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID format"})
	}
	if err := ctl.Products.Delete(ctx, id); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Product deleted"})
}
