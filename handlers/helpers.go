package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
	"github.com/RuKhan7/Flea-market2.0000/utils"
)

// currentProfile resolves the authenticated caller's marketplace profile.
// Every write path goes through this; there is no fallback identity.
func currentProfile(c *fiber.Ctx, db *gorm.DB) (*models.Profile, error) {
	userID, ok := utils.UserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user session")
	}

	var profile models.Profile
	if err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Profile not found")
	}
	return &profile, nil
}
