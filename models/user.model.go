package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login credentials
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FullName string `gorm:"size:100" json:"full_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Marketplace identity (buyer/seller attributes live on Profile, not User)
	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}
