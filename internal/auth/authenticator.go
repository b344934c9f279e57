package auth

import (
	"context"
	"time"

	"github.com/kirinho/cloud-file/internal/domain"
)

// Authenticator orchestrates login: credential verification followed by
// token minting. A failed verification is terminal for the call; there is
// no retry or lockout here.
type Authenticator struct {
	verifier *CredentialVerifier
	tokens   *TokenManager
}

// NewAuthenticator wires the verifier and token manager together.
func NewAuthenticator(verifier *CredentialVerifier, tokens *TokenManager) *Authenticator {
	return &Authenticator{verifier: verifier, tokens: tokens}
}

// Login verifies the credentials and, on success, mints an access token
// for the subject. Verification failures propagate unchanged.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := a.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := a.tokens.Mint(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Tokens exposes the underlying token manager for guard construction.
func (a *Authenticator) Tokens() *TokenManager {
	return a.tokens
}
