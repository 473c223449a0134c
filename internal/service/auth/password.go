package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a basic-auth password against the stored hash.
// The Verifier depends on this interface so credential tests can swap in a
// cheap fake instead of paying the bcrypt cost.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword, or an
	// error on mismatch or an undecodable hash.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier over the bcrypt hashes written
// by the user store.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
