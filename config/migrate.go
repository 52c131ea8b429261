package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/models"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.ReviewComment{},
		&models.Comment{},
		&models.Message{},
		&models.Favorite{},
	)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database Migrations completed succesfully...")

	// Ensure categories are seeded even on normal migration
	SeedCategories(db)

	return err
}

func ResetAndMigrate(db *gorm.DB) error {
	// Drop all tables
	tables := []interface{}{
		&models.Favorite{},
		&models.Message{},
		&models.Comment{},
		&models.ReviewComment{},
		&models.Review{},
		&models.ProductImage{},
		&models.Product{},
		&models.Category{},
		&models.Profile{},
		&models.User{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := Migrate(db); err != nil {
		return err
	}

	SeedUsers(db)
	SeedProducts(db)

	log.Println("Database reset and migration completed successfully.")
	return nil
}
