package catalog

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

// PageSize is the fixed number of listings per catalog page.
const PageSize = 12

// ParsePage reads a 1-based page parameter. Anything that is not a positive
// integer falls back to page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate runs the composed query and returns one page of products together
// with pagination metadata. Out-of-range pages are clamped to the nearest
// valid page, never an error. Seller (with user), category and images are
// preloaded so callers can build the listing view-model without extra trips.
func Paginate(q *gorm.DB, page int) ([]models.Product, models.PaginationMeta, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, models.PaginationMeta{}, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var products []models.Product
	err := q.
		Preload("Seller.User").
		Preload("Category").
		Preload("Images").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&products).Error
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return products, models.NewPaginationMeta(page, PageSize, total), nil
}
