package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

func addReview(t *testing.T, db *gorm.DB, product models.Product, author models.Profile, rating int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Review{
		ProductID: product.ID,
		AuthorID:  author.ID,
		Rating:    rating,
		Comment:   "review",
	}).Error)
}

func TestSellerRatingNoReviews(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	createProduct(t, db, seller, productSpec{title: "Lamp", city: "Moscow", price: 5})

	rating, err := SellerRating(db, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating)
}

func TestSellerRatingMean(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	buyer := createSeller(t, db, "buyer", "Kazan")

	first := createProduct(t, db, seller, productSpec{title: "Lamp", city: "Moscow", price: 5})
	second := createProduct(t, db, seller, productSpec{title: "Desk", city: "Moscow", price: 40})

	addReview(t, db, first, buyer, 5)
	addReview(t, db, first, buyer, 4)
	addReview(t, db, second, buyer, 3)

	rating, err := SellerRating(db, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating)
}

func TestSellerRatingRoundsToOneDecimal(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	buyer := createSeller(t, db, "buyer", "Kazan")
	product := createProduct(t, db, seller, productSpec{title: "Lamp", city: "Moscow", price: 5})

	// mean of {3,3,4} is 3.333... -> 3.3
	addReview(t, db, product, buyer, 3)
	addReview(t, db, product, buyer, 3)
	addReview(t, db, product, buyer, 4)

	rating, err := SellerRating(db, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.3, rating)
}

func TestSellerRatingIgnoresOtherSellers(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	other := createSeller(t, db, "other", "Kazan")

	theirs := createProduct(t, db, other, productSpec{title: "Chair", city: "Kazan", price: 15})
	addReview(t, db, theirs, seller, 1)

	rating, err := SellerRating(db, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating)
}

func TestSellerCounts(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	buyer := createSeller(t, db, "buyer", "Kazan")

	active := createProduct(t, db, seller, productSpec{title: "Lamp", city: "Moscow", price: 5})
	createProduct(t, db, seller, productSpec{title: "Desk", city: "Moscow", price: 40, status: models.ProductStatusSold})
	addReview(t, db, active, buyer, 5)

	stats, err := GetSellerStats(db, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ReviewsCount)
	assert.Equal(t, int64(2), stats.ProductsCount)
	assert.Equal(t, int64(1), stats.ActiveCount)
	assert.Equal(t, 5.0, stats.Rating)
}

func TestPopularCategories(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")

	books := createCategory(t, db, "Books")
	electronics := createCategory(t, db, "Electronics")
	empty := createCategory(t, db, "Empty")
	toys := createCategory(t, db, "Toys")

	for i := 0; i < 3; i++ {
		createProduct(t, db, seller, productSpec{title: "gadget", city: "Moscow", price: 10, category: &electronics.ID})
	}
	createProduct(t, db, seller, productSpec{title: "novel", city: "Moscow", price: 10, category: &books.ID})
	createProduct(t, db, seller, productSpec{title: "puzzle", city: "Moscow", price: 10, category: &toys.ID})

	counts, err := PopularCategories(db, 6)
	require.NoError(t, err)
	require.Len(t, counts, 4)

	assert.Equal(t, electronics.ID, counts[0].ID)
	assert.Equal(t, int64(3), counts[0].ProductCount)

	// books and toys tie on 1; lower id wins
	assert.Equal(t, books.ID, counts[1].ID)
	assert.Equal(t, toys.ID, counts[2].ID)

	assert.Equal(t, empty.ID, counts[3].ID)
	assert.Equal(t, int64(0), counts[3].ProductCount)
}

func TestPopularCategoriesLimit(t *testing.T) {
	db := setupDB(t)
	for _, name := range []string{"A", "B", "C"} {
		createCategory(t, db, name)
	}

	counts, err := PopularCategories(db, 2)
	require.NoError(t, err)
	assert.Len(t, counts, 2)
}

func TestIncrementViews(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	product := createProduct(t, db, seller, productSpec{title: "Lamp", city: "Moscow", price: 5})

	require.NoError(t, IncrementViews(db, product.ID))
	require.NoError(t, IncrementViews(db, product.ID))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, uint(2), got.Views)
}

func TestIncrementViewsConcurrent(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	product := createProduct(t, db, seller, productSpec{title: "Lamp", city: "Moscow", price: 5})

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, IncrementViews(db, product.ID))
		}()
	}
	wg.Wait()

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, uint(n), got.Views, "no increment may be lost")
}
