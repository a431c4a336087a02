package router

import (
	"log"

	"network/internal/handlers"
	"network/internal/middleware"
	"network/internal/models"
	"network/internal/repositories"
	"network/internal/serializers"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	// --- Serializers ---
	postSerializer := serializers.NewPostSerializer(likeRepo)
	userSerializer := serializers.NewUserSerializer(followRepo)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(e.Group(""))
	log.Println("Auth routes configured.")

	// --- Protected routes (require a session token) ---
	api := e.Group("")
	api.Use(middleware.JWTAuthMiddleware(userRepo))

	feedHandler := handlers.NewFeedHandler(postRepo, postSerializer, userSerializer)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, likeRepo, postSerializer)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, userSerializer)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	log.Println("All routes configured.")
}
