package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

// CreateReviewRequest defines the payload for leaving a review
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview - POST /api/products/:id/reviews
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	productID, _ := strconv.Atoi(c.Params("id"))
	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rating must be between 1 and 5"})
	}

	review := models.Review{
		ProductID: product.ID,
		AuthorID:  profile.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Review created", "data": review})
}

// GetReviews - GET /api/products/:id/reviews
func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("id"))

	var reviews []models.Review
	if err := h.DB.
		Preload("Author.User").
		Preload("ReviewComments.Author.User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	return c.JSON(fiber.Map{"data": reviews})
}

// CreateReviewCommentRequest defines the payload for replying to a review
type CreateReviewCommentRequest struct {
	Text string `json:"text"`
}

// CreateReviewComment - POST /api/reviews/:id/comments
func (h *ReviewHandler) CreateReviewComment(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	reviewID, _ := strconv.Atoi(c.Params("id"))
	var review models.Review
	if err := h.DB.First(&review, reviewID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}

	var req CreateReviewCommentRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	comment := models.ReviewComment{
		ReviewID: review.ID,
		AuthorID: profile.ID,
		Text:     req.Text,
	}

	if err := h.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create comment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Comment created", "data": comment})
}
