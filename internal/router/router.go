package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/apperrors"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/handlers"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/media"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/middleware"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/repositories"
	"github.com/Ashitosh-Bhise/speakwave-server/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, storage media.Storage) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Repost{},
		&models.Comment{},
		&models.Reaction{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	repostRepo := repositories.NewPostgresRepostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, followRepo, repostRepo, commentRepo, reactionRepo, storage, cfg.UploadDir, cfg.StrictEmptyResults)

	// Listing all posts is the one public post route
	e.GET("/api/v1/posts", postHandler.GetAllPosts)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, followRepo, repostRepo, storage, cfg.UploadDir)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	reactionHandler := handlers.NewReactionHandler(reactionRepo, postRepo, userRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	log.Println("All routes configured.")
}
