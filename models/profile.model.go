package models

import (
	"time"
)

// Profile wraps a User with marketplace attributes. Everything a member
// authors (products, reviews, comments, messages) hangs off the Profile.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Phone    *string `gorm:"size:20" json:"phone"`
	City     string  `gorm:"size:100" json:"city"`
	Avatar   string  `json:"avatar"`
	IsSeller bool    `gorm:"default:false" json:"is_seller"`
	Passport *string `gorm:"size:50" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user"`
	Products []Product `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// DisplayName is what listings show next to a product.
func (p *Profile) DisplayName() string {
	if p.User.FullName != "" {
		return p.User.FullName
	}
	return p.User.Username
}
