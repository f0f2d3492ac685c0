package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = bcrypt.DefaultCost

var generateFromPassword = bcrypt.GenerateFromPassword

func hashPassword(password string) (string, error) {
	bytes, err := generateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
