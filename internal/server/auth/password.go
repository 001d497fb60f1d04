package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing. Deliberately slow.
const bcryptCost = 10

// HashPassword produces a salted one-way digest of the plaintext password.
// A fresh salt is generated per call and embedded in the digest encoding.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext password matches the digest.
// A malformed digest is never an error, just a mismatch.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
