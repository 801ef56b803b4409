package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is assigned to accounts created without an explicit password
const DefaultPassword = "password123"

// BcryptCost is the hashing cost used for stored passwords. Tests lower it.
var BcryptCost = 12

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
