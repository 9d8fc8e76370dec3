package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword hashes a plaintext password with a randomized salt. The salt
// is embedded in the output, so verification needs no separate salt storage.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. A
// malformed hash fails closed: it is never treated as a match.
func VerifyPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
