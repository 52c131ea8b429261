package models

import (
	"time"
)

// Comment is a question/remark left on a product page (distinct from Review,
// which carries a rating).
type Comment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	AuthorID  uint `gorm:"index;not null" json:"author_id"`

	Text string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`

	Author Profile `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
}
