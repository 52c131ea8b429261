package models

import (
	"time"
)

type Review struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	AuthorID  uint `gorm:"index;not null" json:"author_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author         Profile         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	ReviewComments []ReviewComment `gorm:"constraint:OnDelete:CASCADE" json:"review_comments,omitempty"`
}
