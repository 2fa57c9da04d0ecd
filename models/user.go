package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Verified   bool       `gorm:"default:false" json:"verified"`
	OTP        string     `json:"-"`
	OTPExpires *time.Time `json:"-"`

	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`

	// Profile attributes consumed by the energy need estimator. The numeric
	// fields are pointers so "never provided" stays distinct from zero.
	Gender        string   `json:"gender"` // male|female|other
	Age           *int     `json:"age"`
	Height        *float64 `json:"height"` // cm
	Weight        *float64 `json:"weight"` // kg
	ActivityLevel string   `json:"activityLevel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
