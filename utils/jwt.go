package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues a 24h HS256 token carrying the user's id and email.
func GenerateJWT(secret []byte, userID uint, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	})

	return token.SignedString(secret)
}
