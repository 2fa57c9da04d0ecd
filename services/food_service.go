package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
)

// FoodService owns the food catalog: local-first name resolution with a
// fallback to Open Food Facts, browse, and bulk seeding.
type FoodService struct {
	db       *gorm.DB
	off      *OpenFoodFactsService
	pageSize int
}

func NewFoodService(db *gorm.DB, off *OpenFoodFactsService, pageSize int) *FoodService {
	return &FoodService{db: db, off: off, pageSize: pageSize}
}

// NormalizeFoodName produces the canonical catalog key: lowercase, trimmed.
// Applied at every boundary where a food name enters the system.
func NormalizeFoodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetByID loads a catalog entry, mapping a missing row to ErrFoodNotFound.
func (s *FoodService) GetByID(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

// Resolve maps a free-text food name to nutrient data. The local catalog is
// checked first; on a miss, Open Food Facts is queried, the best candidate is
// selected, and the discovery is cached under the normalized name. A failed
// cache write is logged and ignored: the resolved record is returned anyway.
func (s *FoodService) Resolve(ctx context.Context, rawName string) (*models.Food, error) {
	name := NormalizeFoodName(rawName)
	if name == "" {
		return nil, ErrFoodNotFound
	}

	var food models.Food
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&food).Error
	if err == nil {
		return &food, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log.Printf("[RESOLVE] %q not in local catalog, querying Open Food Facts", name)
	products, err := s.off.Search(ctx, name, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	best := pickBestMatch(name, products)
	if best == nil {
		return nil, ErrFoodNotFound
	}

	// Prefer the computed per-serving energy, fall back to per 100g.
	calories := best.Nutriments.EnergyKcalComputed
	if calories == 0 {
		calories = best.Nutriments.EnergyKcal100g
	}
	if calories <= 0 {
		log.Printf("[RESOLVE] no usable calorie data for %q (product %q)", name, best.ProductName)
		return nil, ErrFoodNotFound
	}

	resolved := models.Food{
		Name:               name,
		Calories:           math.Round(calories),
		Protein:            math.Round(best.Nutriments.Proteins100g),
		Carbohydrates:      math.Round(best.Nutriments.Carbohydrates100g),
		Fats:               math.Round(best.Nutriments.Fat100g),
		Category:           firstCategory(best.Categories),
		Region:             "Open Food Facts Source",
		TypicalServingSize: "100g",
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&resolved)
	switch {
	case res.Error != nil:
		log.Printf("[RESOLVE] failed to cache %q: %v", name, res.Error)
	case res.RowsAffected == 0:
		// Lost a cache-write race; the winner's row is the canonical one.
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&resolved).Error; err != nil {
			log.Printf("[RESOLVE] refetch after conflict for %q: %v", name, err)
		}
	default:
		log.Printf("[RESOLVE] cached new food %q with %.0f calories", name, resolved.Calories)
	}

	return &resolved, nil
}

// pickBestMatch applies the candidate tie-break order: a relevant non-water
// product first, else the first non-water product, else the first product.
func pickBestMatch(term string, products []OFFProduct) *OFFProduct {
	var best *OFFProduct
	for i := range products {
		p := &products[i]
		nameLower := strings.ToLower(p.ProductName)
		categoriesLower := strings.ToLower(p.Categories)

		relevant := strings.Contains(nameLower, term) || strings.Contains(categoriesLower, term)
		water := strings.Contains(nameLower, "water") || strings.Contains(categoriesLower, "water")

		if relevant && !water {
			return p
		}
		if best == nil && !water {
			best = p
		}
	}
	if best == nil && len(products) > 0 {
		best = &products[0]
	}
	return best
}

func firstCategory(categories string) string {
	if strings.TrimSpace(categories) == "" {
		return "Uncategorized"
	}
	return strings.TrimSpace(strings.SplitN(categories, ",", 2)[0])
}

// SearchLocal lists catalog entries whose name contains term, for browsing.
func (s *FoodService) SearchLocal(ctx context.Context, term string) ([]models.Food, error) {
	q := s.db.WithContext(ctx).Limit(50).Order("name ASC")
	if t := NormalizeFoodName(term); t != "" {
		q = q.Where("name LIKE ?", "%"+t+"%")
	}

	var foods []models.Food
	if err := q.Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// SeedFood is one record of a bulk catalog import.
type SeedFood struct {
	Name               string  `json:"name"`
	Calories           float64 `json:"calories"`
	Protein            float64 `json:"protein"`
	Carbohydrates      float64 `json:"carbohydrates"`
	Fats               float64 `json:"fats"`
	Category           string  `json:"category"`
	Region             string  `json:"region"`
	TypicalServingSize string  `json:"typicalServingSize"`
}

// SeedFoods replaces the whole catalog with the given records, applying the
// same name normalization used everywhere else. Duplicate names within the
// input collapse to their first occurrence. Returns the number of rows written.
func (s *FoodService) SeedFoods(ctx context.Context, records []SeedFood) (int, error) {
	foods := make([]models.Food, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		name := NormalizeFoodName(r.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		category := r.Category
		if category == "" {
			category = "Other"
		}
		serving := r.TypicalServingSize
		if serving == "" {
			serving = "100g"
		}
		foods = append(foods, models.Food{
			Name:               name,
			Calories:           r.Calories,
			Protein:            r.Protein,
			Carbohydrates:      r.Carbohydrates,
			Fats:               r.Fats,
			Category:           category,
			Region:             r.Region,
			TypicalServingSize: serving,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Food{}).Error; err != nil {
			return err
		}
		if len(foods) == 0 {
			return nil
		}
		return tx.Create(&foods).Error
	})
	if err != nil {
		return 0, err
	}
	return len(foods), nil
}
