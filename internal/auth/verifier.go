package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kirinho/cloud-file/internal/domain"
)

// UserStore is the read-only lookup surface the auth core consumes. The
// pgx-backed repository satisfies it; tests use in-memory stubs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialVerifier checks a submitted identity and secret against the
// stored hash. It never writes.
type CredentialVerifier struct {
	users UserStore
}

// NewCredentialVerifier constructs a verifier over the given store.
func NewCredentialVerifier(users UserStore) *CredentialVerifier {
	return &CredentialVerifier{users: users}
}

// Verify resolves the identity and compares the secret. An unknown
// identity and a wrong secret both report InvalidCredentials, and the
// unknown-identity path burns an equivalent bcrypt comparison so the two
// are not separable by timing. A disabled account is only reported after
// the secret matched.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			burnComparison(password)
			return nil, NewFailure(FailureInvalidCredentials)
		}
		return nil, WrapFailure(FailureLookup, err)
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, NewFailure(FailureInvalidCredentials)
	}
	if !user.Enabled {
		return nil, NewFailure(FailureAccountDisabled)
	}
	return user, nil
}
