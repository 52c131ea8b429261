package catalog

import (
	"database/sql"
	"math"

	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

// SellerStats bundles the aggregates shown on a seller card.
type SellerStats struct {
	Rating        float64 `json:"rating"`
	ReviewsCount  int64   `json:"reviews_count"`
	ProductsCount int64   `json:"products_count"`
	ActiveCount   int64   `json:"active_count"`
}

// SellerRating returns the mean rating over all reviews left on the seller's
// products, rounded to one decimal. A seller with no reviews rates 0.0.
func SellerRating(db *gorm.DB, sellerID uint) (float64, error) {
	var avg sql.NullFloat64
	err := db.Model(&models.Review{}).
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("products.seller_id = ?", sellerID).
		Select("AVG(reviews.rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return math.Round(avg.Float64*10) / 10, nil
}

// SellerReviewsCount counts reviews across all of the seller's products.
func SellerReviewsCount(db *gorm.DB, sellerID uint) (int64, error) {
	var n int64
	err := db.Model(&models.Review{}).
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("products.seller_id = ?", sellerID).
		Count(&n).Error
	return n, err
}

// SellerProductsCount counts every product the seller has listed, regardless
// of status.
func SellerProductsCount(db *gorm.DB, sellerID uint) (int64, error) {
	var n int64
	err := db.Model(&models.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&n).Error
	return n, err
}

// SellerActiveProductsCount counts the seller's currently active listings.
func SellerActiveProductsCount(db *gorm.DB, sellerID uint) (int64, error) {
	var n int64
	err := db.Model(&models.Product{}).
		Where("seller_id = ? AND status = ?", sellerID, models.ProductStatusActive).
		Count(&n).Error
	return n, err
}

// GetSellerStats computes all seller aggregates in one call. Values are read
// live from the store every time; nothing here is cached.
func GetSellerStats(db *gorm.DB, sellerID uint) (SellerStats, error) {
	var stats SellerStats
	var err error

	if stats.Rating, err = SellerRating(db, sellerID); err != nil {
		return stats, err
	}
	if stats.ReviewsCount, err = SellerReviewsCount(db, sellerID); err != nil {
		return stats, err
	}
	if stats.ProductsCount, err = SellerProductsCount(db, sellerID); err != nil {
		return stats, err
	}
	if stats.ActiveCount, err = SellerActiveProductsCount(db, sellerID); err != nil {
		return stats, err
	}
	return stats, nil
}

// CategoryCount is a category with how many products reference it.
type CategoryCount struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

// PopularCategories returns up to limit categories ordered by product count
// descending. Ties break on category id ascending so the order is stable.
func PopularCategories(db *gorm.DB, limit int) ([]CategoryCount, error) {
	if limit <= 0 {
		limit = 6
	}
	var counts []CategoryCount
	err := db.Model(&models.Category{}).
		Select("categories.id, categories.name, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("product_count DESC, categories.id ASC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}

// IncrementViews bumps the view counter by one with a single-column UPDATE.
// Concurrent readers of the same product must each land their increment, so
// this never goes through a read-modify-write of the full row.
func IncrementViews(db *gorm.DB, productID uint) error {
	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
