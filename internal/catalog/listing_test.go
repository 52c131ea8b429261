package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateListing(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	category := createCategory(t, db, "Sports")

	product, err := CreateListing(db, ListingInput{
		SellerID:   seller.ID,
		Title:      "Bike",
		Price:      decimal.NewFromInt(100),
		CategoryID: category.ID,
		City:       "Moscow",
		ImagePaths: []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"},
	})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	assert.Equal(t, models.ProductStatusActive, product.Status)
	assert.Equal(t, models.ConditionUsed, product.Condition, "condition defaults to used")
	assert.Equal(t, int64(1), countRows(t, db, &models.Product{}))
	assert.Equal(t, int64(2), countRows(t, db, &models.ProductImage{}))

	var images []models.ProductImage
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&images).Error)
	require.Len(t, images, 2)
	for _, img := range images {
		assert.False(t, img.IsMain, "no image is auto-flagged main")
	}
}

func TestCreateListingMissingRequiredFields(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	category := createCategory(t, db, "Sports")

	cases := []struct {
		name string
		in   ListingInput
		want error
	}{
		{
			name: "missing title",
			in:   ListingInput{SellerID: seller.ID, Price: decimal.NewFromInt(100), CategoryID: category.ID},
			want: ErrMissingTitle,
		},
		{
			name: "missing seller",
			in:   ListingInput{Title: "Bike", Price: decimal.NewFromInt(100), CategoryID: category.ID},
			want: ErrMissingSeller,
		},
		{
			name: "missing category",
			in:   ListingInput{SellerID: seller.ID, Title: "Bike", Price: decimal.NewFromInt(100)},
			want: ErrMissingCategory,
		},
		{
			name: "zero price",
			in:   ListingInput{SellerID: seller.ID, Title: "Bike", CategoryID: category.ID},
			want: ErrInvalidPrice,
		},
		{
			name: "negative price",
			in:   ListingInput{SellerID: seller.ID, Title: "Bike", Price: decimal.NewFromInt(-5), CategoryID: category.ID},
			want: ErrInvalidPrice,
		},
		{
			name: "bogus condition",
			in:   ListingInput{SellerID: seller.ID, Title: "Bike", Price: decimal.NewFromInt(5), CategoryID: category.ID, Condition: "mint"},
			want: ErrInvalidCondition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.ImagePaths = []string{"/uploads/products/a.jpg"}
			_, err := CreateListing(db, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// a rejected listing leaves no rows behind
	assert.Equal(t, int64(0), countRows(t, db, &models.Product{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.ProductImage{}))
}

func TestCreateListingUnknownCategory(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")

	_, err := CreateListing(db, ListingInput{
		SellerID:   seller.ID,
		Title:      "Bike",
		Price:      decimal.NewFromInt(100),
		CategoryID: 999,
		ImagePaths: []string{"/uploads/products/a.jpg"},
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Equal(t, int64(0), countRows(t, db, &models.Product{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.ProductImage{}))
}

func TestFeaturedProducts(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")

	createManyProducts(t, db, seller, 5)
	createProduct(t, db, seller, productSpec{title: "sold", city: "Moscow", price: 9, status: models.ProductStatusSold})

	featured, err := FeaturedProducts(db, 3)
	require.NoError(t, err)
	require.Len(t, featured, 3)
	for _, p := range featured {
		assert.Equal(t, models.ProductStatusActive, p.Status)
	}
}
