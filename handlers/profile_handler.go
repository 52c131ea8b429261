package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/internal/catalog"
	"github.com/RuKhan7/Flea-market2.0000/models"
)

type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

// GetSeller - GET /api/sellers/:id
// Public seller page: profile, live rating aggregates and active listings.
func (h *ProfileHandler) GetSeller(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var profile models.Profile
	if err := h.DB.Preload("User").First(&profile, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Seller not found"})
	}

	stats, err := catalog.GetSellerStats(h.DB, profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch seller stats"})
	}

	var products []models.Product
	if err := h.DB.
		Preload("Images").
		Where("seller_id = ? AND status = ? AND is_published = ?",
			profile.ID, models.ProductStatusActive, true).
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"seller":      profile,
			"seller_name": profile.DisplayName(),
			"stats":       stats,
			"products":    products,
		},
	})
}

// SearchSellers - GET /api/sellers?q=
func (h *ProfileHandler) SearchSellers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'q' is required",
		})
	}

	var profiles []models.Profile
	err := h.DB.
		Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("LOWER(users.username) LIKE ? OR LOWER(users.full_name) LIKE ?",
			"%"+strings.ToLower(query)+"%", "%"+strings.ToLower(query)+"%").
		Limit(10).
		Find(&profiles).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not search sellers"})
	}

	return c.JSON(fiber.Map{"data": profiles})
}

// GetMyProfile - GET /api/profile
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}

// UpdateProfileRequest defines the editable profile fields
type UpdateProfileRequest struct {
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Avatar   *string `json:"avatar"`
	IsSeller *bool   `json:"is_seller"`
}

// UpdateMyProfile - PUT /api/profile
func (h *ProfileHandler) UpdateMyProfile(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Avatar != nil {
		profile.Avatar = *req.Avatar
	}
	if req.IsSeller != nil {
		profile.IsSeller = *req.IsSeller
	}

	if err := h.DB.Save(profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update profile"})
	}

	return c.JSON(fiber.Map{"message": "Profile updated", "data": profile})
}
