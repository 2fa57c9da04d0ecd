package services

import "errors"

// Core error taxonomy. Controllers map these onto HTTP statuses with
// errors.Is; anything unrecognized is treated as a server fault.
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive number")
	ErrFoodNotFound      = errors.New("food item not found")
	ErrLogNotFound       = errors.New("daily log not found")
	ErrEntryNotFound     = errors.New("food entry not found in this log")
	ErrSourceUnavailable = errors.New("nutrition data source unavailable")

	ErrEmailRegistered = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotVerified     = errors.New("account not verified")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidOTP      = errors.New("invalid or expired OTP")

	ErrProfileIncomplete = errors.New("profile incomplete")
)
