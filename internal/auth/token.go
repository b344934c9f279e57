package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager mints and validates signed access tokens. The signing
// secret and lifetime are fixed at construction and never change for the
// process lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source; used by tests to pin expiry checks.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes the token payload. The role is deliberately absent:
// authorization always resolves the live user record, so role changes
// apply on the next request without re-issuing tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// SubjectID returns the sub claim.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// Mint builds and signs a token for the subject. Timestamps are whole
// seconds; exp - iat always equals the configured lifetime.
func (tm *TokenManager) Mint(subjectID string) (string, time.Time, error) {
	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, WrapFailure(FailureInternal, err)
	}
	return tokenString, expiresAt, nil
}

// Parse verifies the signature and expiry and returns the claims.
// Any tampering, including a malformed token, reports BadSignature;
// a genuine token past its expiry second reports Expired.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		// Signature takes priority: a tampered token is invalid no
		// matter what its claims say.
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, WrapFailure(FailureBadSignature, err)
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, WrapFailure(FailureExpired, err)
		}
		return nil, WrapFailure(FailureBadSignature, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, NewFailure(FailureBadSignature)
	}
	return claims, nil
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
