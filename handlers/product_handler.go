package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/internal/catalog"
	"github.com/RuKhan7/Flea-market2.0000/internal/metrics"
	"github.com/RuKhan7/Flea-market2.0000/models"
)

type ProductHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewProductHandler(db *gorm.DB, uploadDir string) *ProductHandler {
	return &ProductHandler{DB: db, UploadDir: uploadDir}
}

// ProductListItem is one catalog entry: the product plus the resolved seller
// display name and main image reference.
type ProductListItem struct {
	models.Product
	SellerName string               `json:"seller_name"`
	MainImage  *models.ProductImage `json:"main_image,omitempty"`
}

func toListItems(products []models.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, ProductListItem{
			Product:    products[i],
			SellerName: products[i].Seller.DisplayName(),
			MainImage:  catalog.MainImage(&products[i]),
		})
	}
	return items
}

// GetProducts - GET /api/products
// Catalog listing with optional category/city/price/search filters.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := catalog.ParseProductFilter(func(key string) string { return c.Query(key) })
	page := catalog.ParsePage(c.Query("page"))

	products, meta, err := catalog.Paginate(filter.Apply(h.DB), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{"data": toListItems(products), "meta": meta})
}

// Search - GET /api/search
// Free-text search; the query also matches the city column here.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	filter := catalog.ParseProductFilter(func(key string) string { return c.Query(key) })
	filter.MatchCity = true
	page := catalog.ParsePage(c.Query("page"))

	products, meta, err := catalog.Paginate(filter.Apply(h.DB), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not search products"})
	}

	return c.JSON(fiber.Map{"data": toListItems(products), "meta": meta})
}

// GetFeatured - GET /api/products/featured
func (h *ProductHandler) GetFeatured(c *fiber.Ctx) error {
	products, err := catalog.FeaturedProducts(h.DB, 3)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}
	return c.JSON(fiber.Map{"data": toListItems(products)})
}

// GetProduct - GET /api/products/:id
// Detail view; bumps the view counter exactly once per read.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var product models.Product
	err := h.DB.
		Preload("Seller.User").
		Preload("Category").
		Preload("Images").
		Preload("Comments.Author.User").
		Preload("Reviews.Author.User").
		Preload("Reviews.ReviewComments.Author.User").
		First(&product, id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	if err := catalog.IncrementViews(h.DB, product.ID); err != nil {
		log.Printf("view increment failed for product %d: %v", product.ID, err)
	} else {
		product.Views++
		metrics.ProductViews.Inc()
	}

	stats, err := catalog.GetSellerStats(h.DB, product.SellerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch seller stats"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"product":      product,
			"seller_name":  product.Seller.DisplayName(),
			"main_image":   catalog.MainImage(&product),
			"seller_stats": stats,
		},
	})
}

// CreateProduct - POST /api/products
// Multipart form: title, price, category, description, city, address,
// condition, images[]. The product and its image rows commit together;
// a failed image file is skipped and does not abort the listing.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	price, priceErr := decimal.NewFromString(c.FormValue("price"))
	if priceErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a decimal number"})
	}
	categoryID, _ := strconv.Atoi(c.FormValue("category"))

	var imagePaths []string
	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		for _, file := range form.File["images"] {
			path, saveErr := saveImageFile(c, file, h.UploadDir)
			if saveErr != nil {
				log.Printf("skipping image %s: %v", file.Filename, saveErr)
				continue
			}
			imagePaths = append(imagePaths, path)
		}
	}

	product, err := catalog.CreateListing(h.DB, catalog.ListingInput{
		SellerID:    profile.ID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		CategoryID:  uint(categoryID),
		City:        c.FormValue("city"),
		Address:     c.FormValue("address"),
		Condition:   c.FormValue("condition"),
		ImagePaths:  imagePaths,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownCategory):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, catalog.ErrMissingTitle),
			errors.Is(err, catalog.ErrMissingCategory),
			errors.Is(err, catalog.ErrInvalidPrice),
			errors.Is(err, catalog.ErrInvalidCondition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
		}
	}

	metrics.ListingsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProductRequest defines the editable listing fields.
type UpdateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    *uint  `json:"category_id"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Condition   string `json:"condition"`
	Status      string `json:"status"`
}

// UpdateProduct - PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// Check ownership
	if product.SellerID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Title != "" {
		product.Title = req.Title
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != "" {
		price, priceErr := decimal.NewFromString(req.Price)
		if priceErr != nil || !price.IsPositive() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a positive decimal"})
		}
		product.Price = price
	}
	if req.Category != nil {
		product.CategoryID = req.Category
	}
	if req.City != "" {
		product.City = req.City
	}
	if req.Address != "" {
		product.Address = req.Address
	}
	if req.Condition != "" {
		if !models.ValidCondition(req.Condition) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown condition"})
		}
		product.Condition = req.Condition
	}
	if req.Status != "" {
		if !models.ValidStatus(req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
		}
		product.Status = req.Status
	}

	// views is only ever written through its atomic increment
	if err := h.DB.Omit("views").Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct - DELETE /api/products/:id
// Dependent images, reviews and comments go with the product.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// Check ownership
	if product.SellerID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete product"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetMyProducts - GET /api/my-products
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	var products []models.Product
	if err := h.DB.
		Preload("Seller.User").
		Preload("Images").
		Where("seller_id = ?", profile.ID).
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{"data": toListItems(products)})
}

// SetMainImage - PUT /api/products/:id/images/:imageID/main
func (h *ProductHandler) SetMainImage(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	id, _ := strconv.Atoi(c.Params("id"))
	imageID, _ := strconv.Atoi(c.Params("imageID"))

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	if product.SellerID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := catalog.SetMainImage(h.DB, product.ID, uint(imageID)); err != nil {
		if errors.Is(err, catalog.ErrImageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Image not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not set main image"})
	}

	return c.JSON(fiber.Map{"message": "Main image updated"})
}
