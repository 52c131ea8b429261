package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

// ProductFilter is the set of optional criteria a catalog request may carry.
// Zero values mean "no constraint". All supplied criteria are ANDed together
// on top of the public-listing floor (active, published).
type ProductFilter struct {
	CategoryID *uint
	City       string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Query      string

	// MatchCity extends Query to the city column (the generic /search
	// endpoint); the catalog endpoint matches title/description only.
	MatchCity bool
}

// ParseProductFilter builds a filter from raw request parameters. get returns
// the raw value for a key ("" when absent). Malformed numeric values are
// treated as absent, never as an error.
func ParseProductFilter(get func(key string) string) ProductFilter {
	var f ProductFilter

	if raw := get("category"); raw != "" && raw != "all" {
		if id, ok := parseUint(raw); ok {
			f.CategoryID = &id
		}
	}
	f.City = strings.TrimSpace(get("city"))
	f.Query = strings.TrimSpace(get("q"))
	f.PriceMin = parseDecimal(get("price_min"))
	f.PriceMax = parseDecimal(get("price_max"))

	return f
}

// Apply composes the filter into a product query. Ordering is always newest
// first; id breaks creation-time ties so pages are stable.
func (f ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Where("is_published = ?", true)

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) LIKE ?", contains(f.City))
	}
	if f.Query != "" {
		pattern := contains(f.Query)
		if f.MatchCity {
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ?",
				pattern, pattern, pattern)
		} else {
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	return q.Order("created_at DESC, id DESC")
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func parseUint(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func parseDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}
