package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
)

// LogService owns the per-user-per-day food log aggregates. Every entry
// mutation commits together with the totals recomputation, so persisted
// entries and totals can never disagree.
type LogService struct {
	db    *gorm.DB
	foods *FoodService
}

func NewLogService(db *gorm.DB, foods *FoodService) *LogService {
	return &LogService{db: db, foods: foods}
}

// DayStartUTC normalizes t to the start of its calendar day in UTC. It is the
// only date normalization applied to log writes, reads and history queries.
func DayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LogFood records quantity servings of a catalog food for the user on the
// given day (zero date means today) and returns the updated aggregate.
// Logging the same food twice on one day merges into a single entry; the
// per-serving snapshot captured by the first log wins.
func (s *LogService) LogFood(ctx context.Context, userID, foodID uint, quantity float64, date time.Time) (*models.DailyLog, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return nil, ErrInvalidQuantity
	}

	food, err := s.foods.GetByID(ctx, foodID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}
	day := DayStartUTC(date)

	var out *models.DailyLog
	logOnce := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			dailyLog, err := upsertDailyLog(tx, userID, day)
			if err != nil {
				return err
			}

			entry := models.DailyLogEntry{
				DailyLogID:              dailyLog.ID,
				FoodID:                  food.ID,
				Name:                    food.Name,
				CaloriesPerServing:      food.Calories,
				ProteinPerServing:       food.Protein,
				CarbohydratesPerServing: food.Carbohydrates,
				FatsPerServing:          food.Fats,
				Quantity:                quantity,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "daily_log_id"}, {Name: "food_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity":   gorm.Expr("quantity + excluded.quantity"),
					"updated_at": time.Now(),
				}),
			}).Create(&entry).Error; err != nil {
				return err
			}

			if err := recomputeTotals(tx, dailyLog.ID); err != nil {
				return err
			}

			out, err = loadLog(tx, dailyLog.ID)
			return err
		})
	}

	err = logOnce()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a first-log race for this user/day; the aggregate exists now,
		// so one retry merges into it.
		err = logOnce()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// upsertDailyLog creates the (user, day) aggregate if absent and returns the
// surviving row either way. Conditional insert plus refetch keeps concurrent
// first-time logs from ever producing two aggregates.
func upsertDailyLog(tx *gorm.DB, userID uint, day time.Time) (*models.DailyLog, error) {
	dailyLog := models.DailyLog{UserID: userID, Date: day}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&dailyLog)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("user_id = ? AND date = ?", userID, day).First(&dailyLog).Error; err != nil {
			return nil, err
		}
	}
	return &dailyLog, nil
}

// recomputeTotals rewrites the aggregate totals as the weighted sum over its
// entries in a single statement, inside the caller's transaction.
func recomputeTotals(tx *gorm.DB, logID uint) error {
	return tx.Model(&models.DailyLog{}).Where("id = ?", logID).Updates(map[string]interface{}{
		"total_calories":      gorm.Expr("COALESCE((SELECT SUM(quantity * calories_per_serving) FROM daily_log_entries WHERE daily_log_id = ?), 0)", logID),
		"total_protein":       gorm.Expr("COALESCE((SELECT SUM(quantity * protein_per_serving) FROM daily_log_entries WHERE daily_log_id = ?), 0)", logID),
		"total_carbohydrates": gorm.Expr("COALESCE((SELECT SUM(quantity * carbohydrates_per_serving) FROM daily_log_entries WHERE daily_log_id = ?), 0)", logID),
		"total_fats":          gorm.Expr("COALESCE((SELECT SUM(quantity * fats_per_serving) FROM daily_log_entries WHERE daily_log_id = ?), 0)", logID),
	}).Error
}

func loadLog(tx *gorm.DB, logID uint) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	if err := tx.Preload("Entries").First(&dailyLog, logID).Error; err != nil {
		return nil, err
	}
	return &dailyLog, nil
}

// DeleteEntry removes one entry from a log owned by userID and returns the
// updated aggregate. A log that exists but belongs to someone else reads the
// same as a missing log.
func (s *LogService) DeleteEntry(ctx context.Context, userID, logID, entryID uint) (*models.DailyLog, error) {
	var out *models.DailyLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dailyLog models.DailyLog
		if err := tx.Where("id = ? AND user_id = ?", logID, userID).First(&dailyLog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLogNotFound
			}
			return err
		}

		res := tx.Where("id = ? AND daily_log_id = ?", entryID, dailyLog.ID).Delete(&models.DailyLogEntry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEntryNotFound
		}

		if err := recomputeTotals(tx, dailyLog.ID); err != nil {
			return err
		}

		var err error
		out, err = loadLog(tx, dailyLog.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLog returns the aggregate for the user's day, or nil when nothing was
// logged that day; absence is not an error.
func (s *LogService) GetLog(ctx context.Context, userID uint, date time.Time) (*models.DailyLog, error) {
	if date.IsZero() {
		date = time.Now()
	}
	day := DayStartUTC(date)

	var dailyLog models.DailyLog
	err := s.db.WithContext(ctx).Preload("Entries").
		Where("user_id = ? AND date = ?", userID, day).
		First(&dailyLog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dailyLog, nil
}

// DailySummary is one point of a history series. Days with no log are omitted
// from the series entirely, never zero-filled.
type DailySummary struct {
	Date               string  `json:"date"`
	TotalCalories      float64 `json:"totalCalories"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalCarbohydrates float64 `json:"totalCarbohydrates"`
	TotalFats          float64 `json:"totalFats"`
}

// History returns per-day summaries for the inclusive range ending today and
// reaching days back (default 7), oldest first. Macro totals are rounded for
// display; calories are reported as stored.
func (s *LogService) History(ctx context.Context, userID uint, days int) ([]DailySummary, error) {
	if days <= 0 {
		days = 7
	}
	end := DayStartUTC(time.Now())
	start := end.AddDate(0, 0, -days)

	var logs []models.DailyLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	out := make([]DailySummary, 0, len(logs))
	for _, l := range logs {
		out = append(out, DailySummary{
			Date:               l.Date.UTC().Format("2006-01-02"),
			TotalCalories:      l.TotalCalories,
			TotalProtein:       math.Round(l.TotalProtein),
			TotalCarbohydrates: math.Round(l.TotalCarbohydrates),
			TotalFats:          math.Round(l.TotalFats),
		})
	}
	return out, nil
}
