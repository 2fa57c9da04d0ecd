package utils

import (
	"fmt"
	"math/rand"
)

// GenerateOTP returns a six digit one-time code.
func GenerateOTP() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
