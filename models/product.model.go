package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductStatusActive   = "active"
	ProductStatusSold     = "sold"
	ProductStatusReserved = "reserved"
)

const (
	ConditionNew    = "new"
	ConditionUsed   = "used"
	ConditionBroken = "broken"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SellerID    uint            `gorm:"index;not null" json:"seller_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	// Category is optional; deleting a category keeps the product around
	CategoryID *uint `gorm:"index" json:"category_id"`

	City    string `gorm:"size:100;index" json:"city"`
	Address string `gorm:"size:255" json:"address"`

	Status      string `gorm:"size:20;default:'active';index" json:"status"`
	Condition   string `gorm:"size:20;default:'used'" json:"condition"`
	Views       uint   `gorm:"default:0" json:"views"`
	IsPublished bool   `gorm:"default:true" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Seller   Profile        `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"seller"`
	Category *Category      `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Images   []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	Reviews  []Review       `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Comments []Comment      `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// ValidStatus reports whether s is one of the known listing states.
func ValidStatus(s string) bool {
	return s == ProductStatusActive || s == ProductStatusSold || s == ProductStatusReserved
}

// ValidCondition reports whether c is one of the known item conditions.
func ValidCondition(c string) bool {
	return c == ConditionNew || c == ConditionUsed || c == ConditionBroken
}
