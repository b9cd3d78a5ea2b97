package util

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for new hashes. Tests lower it to
// bcrypt.MinCost to keep suites fast.
var BcryptCost = 12

// HashPassword hashes a plain text password with a per-hash random salt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password.
// A malformed hash never matches.
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
