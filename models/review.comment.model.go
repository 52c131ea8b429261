package models

import (
	"time"
)

// ReviewComment is a reply in the thread under a review.
type ReviewComment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ReviewID uint `gorm:"index;not null" json:"review_id"`
	AuthorID uint `gorm:"index;not null" json:"author_id"`

	Text string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`

	Author Profile `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
}
