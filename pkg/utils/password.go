package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored hashes.
const PasswordCost = 10

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. A malformed hash is a mismatch.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
