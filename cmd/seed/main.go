package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/config"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/services"
)

// Replaces the food catalog from a JSON file of seed records:
//
//	go run ./cmd/seed -file foods.json
func main() {
	file := flag.String("file", "foods.json", "path to the seed JSON file")
	flag.Parse()

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

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var records []services.SeedFood
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	foodService := services.NewFoodService(db, nil, 0)
	count, err := foodService.SeedFoods(context.Background(), records)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d foods from %s", count, *file)
}
