package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

var ErrImageNotFound = errors.New("catalog: image does not belong to product")

// MainImage picks the thumbnail for a listing: the image flagged as main if
// one exists, otherwise the first image, otherwise nil. Zero images is a
// normal case, not an error.
func MainImage(p *models.Product) *models.ProductImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// SetMainImage flags one image as the product's main image and clears the
// flag on every other image of the same product in the same transaction, so
// at most one main image exists at any point.
func SetMainImage(db *gorm.DB, productID, imageID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var img models.ProductImage
		if err := tx.Where("id = ? AND product_id = ?", imageID, productID).First(&img).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrImageNotFound
			}
			return err
		}

		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ? AND id <> ?", productID, imageID).
			UpdateColumn("is_main", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.ProductImage{}).
			Where("id = ?", imageID).
			UpdateColumn("is_main", true).Error
	})
}
