// Package credentials provides one-way salted password hashing. Two hashes
// of the same password differ (the salt varies) but both verify.
package credentials

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt digest of the password.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored digest. Malformed or
// empty digests verify as false; Verify never panics.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
