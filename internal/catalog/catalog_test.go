package catalog

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

// setupDB opens a fresh in-memory store per test. A single connection keeps
// concurrent writers serialized the way a real pool would queue them, and the
// foreign_keys pragma turns on constraint enforcement, which sqlite leaves
// off by default.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.ReviewComment{},
		&models.Comment{},
		&models.Message{},
		&models.Favorite{},
	))
	return db
}

func createSeller(t *testing.T, db *gorm.DB, username, city string) models.Profile {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		FullName: username,
		Profile:  &models.Profile{City: city, IsSeller: true},
	}
	require.NoError(t, db.Create(&user).Error)

	profile := *user.Profile
	profile.User = user
	return profile
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

type productSpec struct {
	title       string
	city        string
	price       int64
	category    *uint
	status      string
	unpublished bool
	description string
}

func createProduct(t *testing.T, db *gorm.DB, seller models.Profile, spec productSpec) models.Product {
	t.Helper()

	product := models.Product{
		SellerID:    seller.ID,
		Title:       spec.title,
		Description: spec.description,
		Price:       decimal.NewFromInt(spec.price),
		CategoryID:  spec.category,
		City:        spec.city,
		Condition:   models.ConditionUsed,
	}
	require.NoError(t, db.Create(&product).Error)

	// Status and is_published carry defaults, so non-default values are set
	// with an explicit column update.
	if spec.status != "" && spec.status != models.ProductStatusActive {
		require.NoError(t, db.Model(&product).UpdateColumn("status", spec.status).Error)
		product.Status = spec.status
	}
	if spec.unpublished {
		require.NoError(t, db.Model(&product).UpdateColumn("is_published", false).Error)
		product.IsPublished = false
	}
	return product
}

func createManyProducts(t *testing.T, db *gorm.DB, seller models.Profile, n int) []models.Product {
	t.Helper()

	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, createProduct(t, db, seller, productSpec{
			title: fmt.Sprintf("item %03d", i),
			city:  seller.City,
			price: int64(10 + i),
		}))
	}
	return products
}
