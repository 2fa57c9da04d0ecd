package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
)

// newTestDB opens a per-test in-memory database with the full schema. The
// named shared-cache DSN keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.DailyLog{},
		&models.DailyLogEntry{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// mustCreateFood inserts a catalog entry directly, bypassing resolution.
func mustCreateFood(t *testing.T, db *gorm.DB, name string, calories, protein, carbs, fats float64) *models.Food {
	t.Helper()

	food := models.Food{
		Name:               NormalizeFoodName(name),
		Calories:           calories,
		Protein:            protein,
		Carbohydrates:      carbs,
		Fats:               fats,
		Category:           "Other",
		Region:             "Test",
		TypicalServingSize: "100g",
	}
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("create food %q: %v", name, err)
	}
	return &food
}
