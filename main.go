package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/config"
	"github.com/RuKhan7/Flea-market2.0000/handlers"
	"github.com/RuKhan7/Flea-market2.0000/internal/ws"
	"github.com/RuKhan7/Flea-market2.0000/middleware"
	"github.com/RuKhan7/Flea-market2.0000/utils"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName:      "Flea Market Backend",
		ServerHeader: "Flea Market Server/1.0",
		BodyLimit:    20 * 1024 * 1024, // listings carry photos
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Uploaded product photos
	app.Static("/uploads", "./uploads")

	setupRoutes(app, db, hub, cfg)

	middleware.SetupErrorHandler(app)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.Host, cfg.AppPort)

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRoutes(app *fiber.App, db *gorm.DB, hub *ws.Hub, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db)
	productHandler := handlers.NewProductHandler(db, cfg.UploadDir)
	categoryHandler := handlers.NewCategoryHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	commentHandler := handlers.NewCommentHandler(db)
	favoriteHandler := handlers.NewFavoriteHandler(db)
	messageHandler := handlers.NewMessageHandler(hub, db)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Public catalog
	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/featured", productHandler.GetFeatured)
	api.Get("/search", productHandler.Search)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/products/:id/reviews", reviewHandler.GetReviews)
	api.Get("/products/:id/comments", commentHandler.GetComments)
	api.Get("/categories", categoryHandler.GetCategories)
	api.Get("/categories/popular", categoryHandler.GetPopularCategories)
	api.Get("/sellers", profileHandler.SearchSellers)
	api.Get("/sellers/:id", profileHandler.GetSeller)

	// Authenticated
	auth := api.Group("", utils.AuthMiddleware)
	auth.Post("/products", productHandler.CreateProduct)
	auth.Put("/products/:id", productHandler.UpdateProduct)
	auth.Delete("/products/:id", productHandler.DeleteProduct)
	auth.Put("/products/:id/images/:imageID/main", productHandler.SetMainImage)
	auth.Get("/my-products", productHandler.GetMyProducts)
	auth.Post("/products/:id/reviews", reviewHandler.CreateReview)
	auth.Post("/products/:id/comments", commentHandler.CreateComment)
	auth.Post("/reviews/:id/comments", reviewHandler.CreateReviewComment)
	auth.Post("/products/:id/favorite", favoriteHandler.AddFavorite)
	auth.Delete("/products/:id/favorite", favoriteHandler.RemoveFavorite)
	auth.Get("/favorites", favoriteHandler.GetFavorites)
	auth.Post("/messages", messageHandler.SendMessage)
	auth.Get("/messages", messageHandler.GetInbox)
	auth.Get("/messages/with/:profileID", messageHandler.GetConversation)
	auth.Patch("/messages/:id/read", messageHandler.MarkRead)
	auth.Get("/profile", profileHandler.GetMyProfile)
	auth.Put("/profile", profileHandler.UpdateMyProfile)
	auth.Post("/upload", uploadHandler.UploadImage)

	// Message notifications over websocket
	app.Use("/ws", messageHandler.WebSocketUpgradeMiddleware)
	app.Get("/ws", utils.AuthMiddleware, messageHandler.ResolveProfileForSocket, messageHandler.NotificationSocket())
}
