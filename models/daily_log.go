package models

import "time"

// DailyLog is the per-user-per-day food log aggregate. The (UserID, Date) pair
// is unique, with Date normalized to start-of-day UTC before it ever reaches
// this model. Entries and totals are always written in the same transaction so
// persisted state never shows them out of sync.
type DailyLog struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:uidx_user_date" json:"userId"`
	Date   time.Time `gorm:"not null;uniqueIndex:uidx_user_date" json:"date"`

	Entries []DailyLogEntry `gorm:"constraint:OnDelete:CASCADE" json:"foods"`

	TotalCalories      float64 `json:"totalCalories"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalCarbohydrates float64 `json:"totalCarbohydrates"`
	TotalFats          float64 `json:"totalFats"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyLogEntry is one logged food within a DailyLog. Per-serving values are
// captured at log time so later catalog edits never rewrite history. Rows are
// hard-deleted so the (log, food) unique index stays truthful after removal.
type DailyLogEntry struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DailyLogID uint `gorm:"not null;uniqueIndex:uidx_log_food" json:"-"`
	FoodID     uint `gorm:"not null;uniqueIndex:uidx_log_food" json:"foodId"`

	Name                    string  `gorm:"not null" json:"name"`
	CaloriesPerServing      float64 `gorm:"not null" json:"caloriesPerServing"`
	ProteinPerServing       float64 `json:"proteinPerServing"`
	CarbohydratesPerServing float64 `json:"carbohydratesPerServing"`
	FatsPerServing          float64 `json:"fatsPerServing"`
	Quantity                float64 `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
