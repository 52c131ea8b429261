package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

// setupAuthedApp wires the product routes behind a stub auth middleware that
// injects the given user id, so handler behavior is tested without real JWTs.
func setupAuthedApp(t *testing.T, db *gorm.DB, userID uint) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})

	productHandler := NewProductHandler(db, t.TempDir())
	favoriteHandler := NewFavoriteHandler(db)

	app.Post("/api/products", productHandler.CreateProduct)
	app.Delete("/api/products/:id", productHandler.DeleteProduct)
	app.Post("/api/products/:id/favorite", favoriteHandler.AddFavorite)
	app.Delete("/api/products/:id/favorite", favoriteHandler.RemoveFavorite)
	return app
}

func multipartListing(t *testing.T, fields map[string]string, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range imageNames {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a jpeg"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateProductHandler(t *testing.T) {
	db := setupTestDB(t)
	seller, category := seedCatalog(t, db, 0)
	app := setupAuthedApp(t, db, seller.UserID)

	body, contentType := multipartListing(t, map[string]string{
		"title":    "Bike",
		"price":    "100",
		"category": fmt.Sprintf("%d", category.ID),
		"city":     "Moscow",
	}, []string{"a.jpg", "b.jpg"})

	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var productCount, imageCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&imageCount).Error)
	assert.Equal(t, int64(1), productCount)
	assert.Equal(t, int64(2), imageCount)
}

func TestCreateProductHandlerMissingTitle(t *testing.T) {
	db := setupTestDB(t)
	seller, category := seedCatalog(t, db, 0)
	app := setupAuthedApp(t, db, seller.UserID)

	body, contentType := multipartListing(t, map[string]string{
		"price":    "100",
		"category": fmt.Sprintf("%d", category.ID),
	}, nil)

	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(0), productCount)
}

func TestCreateProductHandlerBadPrice(t *testing.T) {
	db := setupTestDB(t)
	seller, category := seedCatalog(t, db, 0)
	app := setupAuthedApp(t, db, seller.UserID)

	body, contentType := multipartListing(t, map[string]string{
		"title":    "Bike",
		"price":    "cheap",
		"category": fmt.Sprintf("%d", category.ID),
	}, nil)

	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "creation fails closed on bad price")
}

func TestDeleteProductHandlerRemovesDependents(t *testing.T) {
	db := setupTestDB(t)
	seller, _ := seedCatalog(t, db, 1)
	app := setupAuthedApp(t, db, seller.UserID)

	var product models.Product
	require.NoError(t, db.First(&product).Error)
	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, Image: "/uploads/products/a.jpg"}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: seller.UserID, ProductID: product.ID}).Error)

	url := fmt.Sprintf("/api/products/%d", product.ID)
	resp, err := app.Test(httptest.NewRequest("DELETE", url, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var products, images, favorites int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&images).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
	assert.Equal(t, int64(0), products)
	assert.Equal(t, int64(0), images, "image rows go with the product")
	assert.Equal(t, int64(0), favorites, "favorites go with the product")
}

func TestFavoriteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seller, _ := seedCatalog(t, db, 1)
	app := setupAuthedApp(t, db, seller.UserID)

	var product models.Product
	require.NoError(t, db.First(&product).Error)

	url := fmt.Sprintf("/api/products/%d/favorite", product.ID)
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", url, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var n int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "a user may favorite a product at most once")

	resp, err := app.Test(httptest.NewRequest("DELETE", url, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.Model(&models.Favorite{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
