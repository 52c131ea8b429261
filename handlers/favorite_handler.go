package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
	"github.com/RuKhan7/Flea-market2.0000/utils"
)

type FavoriteHandler struct {
	DB *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{DB: db}
}

// AddFavorite - POST /api/products/:id/favorite
// Idempotent: favoriting a product twice keeps a single row.
func (h *FavoriteHandler) AddFavorite(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	productID, _ := strconv.Atoi(c.Params("id"))
	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	favorite := models.Favorite{UserID: userID, ProductID: product.ID}
	if err := h.DB.Where("user_id = ? AND product_id = ?", userID, product.ID).
		FirstOrCreate(&favorite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add favorite"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to favorites"})
}

// RemoveFavorite - DELETE /api/products/:id/favorite
func (h *FavoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	productID, _ := strconv.Atoi(c.Params("id"))
	if err := h.DB.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove favorite"})
	}

	return c.JSON(fiber.Map{"message": "Removed from favorites"})
}

// GetFavorites - GET /api/favorites
func (h *FavoriteHandler) GetFavorites(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var favorites []models.Favorite
	if err := h.DB.
		Preload("Product.Seller.User").
		Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch favorites"})
	}

	return c.JSON(fiber.Map{"data": favorites})
}
