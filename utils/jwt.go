package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs an identity token the way the external provider would.
// The rest of the app only ever reads validated claims from it.
func GenerateToken(secret []byte, username, name, email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   username,
		"name":  name,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString(secret)
}
