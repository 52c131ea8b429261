package config

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
	"github.com/RuKhan7/Flea-market2.0000/utils"
)

func SeedCategories(db *gorm.DB) {
	categories := []string{
		"Electronics",
		"Clothing",
		"Furniture",
		"Books",
		"Sports",
		"Auto parts",
		"Toys",
		"Other",
	}

	for _, name := range categories {
		var existing models.Category
		if err := db.Where("name = ?", name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", name, err)
			}
		}
	}
}

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	phone1 := "+10000000001"
	phone2 := "+10000000002"

	users := []models.User{
		{
			Username: "seller1",
			Email:    "seller1@example.com",
			Password: password,
			FullName: "Seller One",
			Profile:  &models.Profile{Phone: &phone1, City: "Moscow", IsSeller: true},
		},
		{
			Username: "buyer1",
			Email:    "buyer1@example.com",
			Password: password,
			FullName: "Buyer One",
			Profile:  &models.Profile{Phone: &phone2, City: "Kazan"},
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("✅ Seeding complete.")
}

func SeedProducts(db *gorm.DB) {
	log.Println("🌱 Seeding products...")

	var user models.User
	if err := db.Where("username = ?", "seller1").First(&user).Error; err != nil {
		log.Printf("Seed products skipped, no seed user: %v", err)
		return
	}
	var seller models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&seller).Error; err != nil {
		log.Printf("Seed products skipped, no seller profile: %v", err)
		return
	}

	var category models.Category
	if err := db.Where("name = ?", "Electronics").First(&category).Error; err != nil {
		log.Printf("Seed products skipped, no category: %v", err)
		return
	}

	products := []models.Product{
		{
			SellerID:    seller.ID,
			Title:       "Used laptop",
			Description: "Works fine, a few scratches",
			Price:       decimal.NewFromInt(250),
			CategoryID:  &category.ID,
			City:        seller.City,
			Condition:   models.ConditionUsed,
			Status:      models.ProductStatusActive,
			IsPublished: true,
		},
		{
			SellerID:    seller.ID,
			Title:       "Mountain bike",
			Description: "Ready to ride",
			Price:       decimal.NewFromInt(120),
			CategoryID:  &category.ID,
			City:        seller.City,
			Condition:   models.ConditionUsed,
			Status:      models.ProductStatusActive,
			IsPublished: true,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := db.Where("title = ? AND seller_id = ?", product.Title, seller.ID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&product).Error; err != nil {
				log.Printf("Failed to seed product %s: %v", product.Title, err)
			}
		}
	}

	log.Println("✅ Seeding complete.")
}
