package models

import "time"

// Food is a catalog entry keyed by its normalized (lowercase, trimmed) name.
// Entries come from bulk seeding or are cached on first Open Food Facts lookup;
// user logging never mutates them.
type Food struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Nutrient values per typical serving (100g reference unit).
	Calories      float64 `gorm:"not null" json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`

	Category           string `json:"category"`
	Region             string `json:"region"`
	TypicalServingSize string `json:"typicalServingSize"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
