package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt hash of an unguessable value. When login hits an
// unknown identity we compare against this instead of returning early, so
// the response time does not reveal whether the identity exists.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// burnComparison spends one bcrypt verification on a value that can never
// match, equalizing the cost of the unknown-identity path.
func burnComparison(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
