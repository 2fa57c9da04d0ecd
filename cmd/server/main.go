package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/config"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/controllers"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/routes"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/services"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	mailer, err := utils.NewMailer(ctx, cfg.AWS.Region, cfg.AWS.SESSender)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	var uploader *utils.Uploader
	if cfg.AWS.S3Bucket != "" {
		uploader, err = utils.NewUploader(ctx, cfg.AWS.Region, cfg.AWS.S3Bucket, cfg.AWS.S3BaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured, profile picture uploads disabled")
	}

	off := services.NewOpenFoodFactsService(cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.Timeout)
	foodService := services.NewFoodService(db, off, cfg.OpenFoodFacts.PageSize)
	logService := services.NewLogService(db, foodService)
	authService := services.NewAuthService(db, mailer, []byte(cfg.JWT.Secret))
	userService := services.NewUserService(db)

	router := routes.SetupRouter(cfg, routes.Controllers{
		Auth: controllers.NewAuthController(authService),
		User: controllers.NewUserController(userService, uploader),
		Food: controllers.NewFoodController(foodService),
		Log:  controllers.NewLogController(logService),
	})

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
