// Package password wraps bcrypt hashing for stored credentials.
package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for all new hashes.
const Cost = 12

// Hash returns a salted bcrypt hash of the plaintext. Hashing the same
// plaintext twice yields different outputs because bcrypt embeds a fresh salt.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
