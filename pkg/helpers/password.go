package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used when no explicit cost is configured.
const PasswordCost = 10

// HashPassword hashes the plain text password using bcrypt at the given cost.
// Costs outside bcrypt's accepted range fall back to PasswordCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = PasswordCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
