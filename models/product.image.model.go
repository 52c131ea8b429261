package models

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Image     string `gorm:"size:255;not null" json:"image"`
	IsMain    bool   `gorm:"default:false" json:"is_main"`
}
