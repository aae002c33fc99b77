package utils

import (
	"fmt"

	"github.com/matthewhartstonge/argon2"
)

var passwordHasher = argon2.DefaultConfig()

func HashPassword(password string) (string, error) {
	encoded, err := passwordHasher.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

// VerifyPassword reports whether password matches the argon2 encoded hash.
// A malformed hash is reported as an error, a wrong password is not.
func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
