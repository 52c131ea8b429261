package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

var (
	ErrMissingSeller    = errors.New("listing: seller is required")
	ErrMissingTitle     = errors.New("listing: title is required")
	ErrMissingCategory  = errors.New("listing: category is required")
	ErrInvalidPrice     = errors.New("listing: price must be greater than zero")
	ErrInvalidCondition = errors.New("listing: unknown condition")
	ErrUnknownCategory  = errors.New("listing: category does not exist")
)

// ListingInput carries everything needed to create a product. SellerID must
// come from the authenticated caller; this layer never invents an identity.
type ListingInput struct {
	SellerID    uint
	Title       string
	Description string
	Price       decimal.Decimal
	CategoryID  uint
	City        string
	Address     string
	Condition   string
	ImagePaths  []string
}

func (in *ListingInput) validate() error {
	if in.SellerID == 0 {
		return ErrMissingSeller
	}
	if in.Title == "" {
		return ErrMissingTitle
	}
	if in.CategoryID == 0 {
		return ErrMissingCategory
	}
	if !in.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if in.Condition != "" && !models.ValidCondition(in.Condition) {
		return ErrInvalidCondition
	}
	return nil
}

// CreateListing creates the product row and one image row per stored file in
// a single transaction. A rejected listing leaves no rows behind. No image is
// auto-flagged as main; MainImage falls back to the first one.
func CreateListing(db *gorm.DB, in ListingInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	condition := in.Condition
	if condition == "" {
		condition = models.ConditionUsed
	}

	product := &models.Product{
		SellerID:    in.SellerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  &in.CategoryID,
		City:        in.City,
		Address:     in.Address,
		Status:      models.ProductStatusActive,
		Condition:   condition,
		IsPublished: true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, in.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownCategory
			}
			return err
		}

		if err := tx.Create(product).Error; err != nil {
			return err
		}

		for _, path := range in.ImagePaths {
			img := models.ProductImage{ProductID: product.ID, Image: path}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			product.Images = append(product.Images, img)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// FeaturedProducts returns n random active listings for the home page
// carousel.
func FeaturedProducts(db *gorm.DB, n int) ([]models.Product, error) {
	if n <= 0 {
		n = 3
	}
	var products []models.Product
	err := db.
		Where("status = ? AND is_published = ?", models.ProductStatusActive, true).
		Preload("Seller.User").
		Preload("Images").
		Order("RANDOM()").
		Limit(n).
		Find(&products).Error
	return products, err
}
