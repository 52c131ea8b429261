package models

import (
	"time"
)

// Message is direct mail between two profiles, optionally about a product.
type Message struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	SenderID    uint `gorm:"index;not null" json:"sender_id"`
	RecipientID uint `gorm:"index;not null" json:"recipient_id"`

	// The listing the conversation started from, if any
	ProductID *uint `gorm:"index" json:"product_id"`

	Text   string `gorm:"type:text;not null" json:"text"`
	IsRead bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Sender    Profile  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender"`
	Recipient Profile  `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient"`
	Product   *Product `gorm:"constraint:OnDelete:SET NULL" json:"product,omitempty"`
}
