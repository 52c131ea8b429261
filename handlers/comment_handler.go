package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

type CommentHandler struct {
	DB *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{DB: db}
}

// CreateCommentRequest defines the payload for commenting on a product
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CreateComment - POST /api/products/:id/comments
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	productID, _ := strconv.Atoi(c.Params("id"))
	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	comment := models.Comment{
		ProductID: product.ID,
		AuthorID:  profile.ID,
		Text:      req.Text,
	}

	if err := h.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create comment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Comment created", "data": comment})
}

// GetComments - GET /api/products/:id/comments
func (h *CommentHandler) GetComments(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("id"))

	var comments []models.Comment
	if err := h.DB.
		Preload("Author.User").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch comments"})
	}

	return c.JSON(fiber.Map{"data": comments})
}
