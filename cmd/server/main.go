package main

import (
	"context"
	"log"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/media"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/router"
	"github.com/Ashitosh-Bhise/speakwave-server/pkg/config"
	"github.com/Ashitosh-Bhise/speakwave-server/pkg/firebase"
	"github.com/Ashitosh-Bhise/speakwave-server/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase (auth + storage bucket for the media delegate)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	storage := media.NewFirebaseStorage(firebaseApp.Bucket, firebaseApp.BucketName)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp.AuthClient, storage)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
