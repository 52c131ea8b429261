package models

import (
	"time"
)

// Favorite marks a product saved by a user. A user can favorite a given
// product at most once.
type Favorite struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_user_product" json:"product_id"`

	CreatedAt time.Time `json:"created_at"`

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product"`
}
