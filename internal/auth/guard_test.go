package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinho/cloud-file/internal/domain"
)

func mintFor(t *testing.T, tm *TokenManager, subjectID string) string {
	t.Helper()
	token, _, err := tm.Mint(subjectID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return token
}

func TestAuthorizeMissingOrMalformedHeader(t *testing.T) {
	guard := NewGuard(NewTokenManager("test-secret", time.Hour), newStubStore())

	cases := []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"some-token-without-scheme",
	}
	for _, header := range cases {
		_, err := guard.Authorize(context.Background(), header, "")
		if !IsKind(err, FailureMissingToken) {
			t.Fatalf("Authorize(%q): kind = %v, want MissingToken", header, KindOf(err))
		}
	}
}

func TestAuthorizeValidToken(t *testing.T) {
	user := testUser(t, "a@x.com", "correct", domain.RoleUser, true)
	tokens := NewTokenManager("test-secret", time.Hour)
	guard := NewGuard(tokens, newStubStore(user))

	got, err := guard.Authorize(context.Background(), "Bearer "+mintFor(t, tokens, user.ID), "")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Fatalf("subject = %q, want a@x.com", got.Email)
	}
}

func TestAuthorizeBadSignature(t *testing.T) {
	user := testUser(t, "a@x.com", "correct", domain.RoleUser, true)
	other := NewTokenManager("other-secret", time.Hour)
	guard := NewGuard(NewTokenManager("test-secret", time.Hour), newStubStore(user))

	_, err := guard.Authorize(context.Background(), "Bearer "+mintFor(t, other, user.ID), "")
	if !IsKind(err, FailureBadSignature) {
		t.Fatalf("kind = %v, want BadSignature", KindOf(err))
	}
}

func TestAuthorizeExpiredToken(t *testing.T) {
	user := testUser(t, "a@x.com", "correct", domain.RoleUser, true)
	now := time.Unix(1700000000, 0)
	tokens := NewTokenManager("test-secret", time.Hour).WithClock(func() time.Time { return now })
	guard := NewGuard(tokens, newStubStore(user))

	token := mintFor(t, tokens, user.ID)
	now = now.Add(2 * time.Hour)

	_, err := guard.Authorize(context.Background(), "Bearer "+token, "")
	if !IsKind(err, FailureExpired) {
		t.Fatalf("kind = %v, want Expired", KindOf(err))
	}
}

func TestAuthorizeSubjectGone(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	guard := NewGuard(tokens, newStubStore())

	_, err := guard.Authorize(context.Background(), "Bearer "+mintFor(t, tokens, "ghost"), "")
	if !IsKind(err, FailureSubjectNotFound) {
		t.Fatalf("kind = %v, want SubjectNotFound", KindOf(err))
	}
}

func TestAuthorizeDisabledSubject(t *testing.T) {
	// The token itself is valid; the live record is disabled.
	user := testUser(t, "a@x.com", "correct", domain.RoleUser, true)
	tokens := NewTokenManager("test-secret", time.Hour)
	guard := NewGuard(tokens, newStubStore(user))
	token := mintFor(t, tokens, user.ID)

	user.Enabled = false
	_, err := guard.Authorize(context.Background(), "Bearer "+token, "")
	if !IsKind(err, FailureAccountDisabled) {
		t.Fatalf("kind = %v, want AccountDisabled", KindOf(err))
	}
}

func TestAuthorizeRoleCheck(t *testing.T) {
	user := testUser(t, "u@x.com", "pw", domain.RoleUser, true)
	admin := testUser(t, "adm@x.com", "pw", domain.RoleAdmin, true)
	tokens := NewTokenManager("test-secret", time.Hour)
	guard := NewGuard(tokens, newStubStore(user, admin))

	_, err := guard.Authorize(context.Background(), "Bearer "+mintFor(t, tokens, user.ID), domain.RoleAdmin)
	if !IsKind(err, FailureForbidden) {
		t.Fatalf("kind = %v, want Forbidden", KindOf(err))
	}

	if _, err := guard.Authorize(context.Background(), "Bearer "+mintFor(t, tokens, admin.ID), domain.RoleAdmin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
}

func TestAuthorizeSeesLiveRoleChange(t *testing.T) {
	user := testUser(t, "u@x.com", "pw", domain.RoleUser, true)
	tokens := NewTokenManager("test-secret", time.Hour)
	guard := NewGuard(tokens, newStubStore(user))
	token := mintFor(t, tokens, user.ID)

	if _, err := guard.Authorize(context.Background(), "Bearer "+token, domain.RoleAdmin); !IsKind(err, FailureForbidden) {
		t.Fatalf("kind = %v, want Forbidden before promotion", KindOf(err))
	}

	// Promotion applies on the next request without a new token.
	user.Role = domain.RoleAdmin
	if _, err := guard.Authorize(context.Background(), "Bearer "+token, domain.RoleAdmin); err != nil {
		t.Fatalf("after promotion: %v", err)
	}
}

func TestAuthorizeLookupFailure(t *testing.T) {
	user := testUser(t, "a@x.com", "correct", domain.RoleUser, true)
	tokens := NewTokenManager("test-secret", time.Hour)
	store := newStubStore(user)
	guard := NewGuard(tokens, store)
	token := mintFor(t, tokens, user.ID)

	store.err = errors.New("connection refused")
	_, err := guard.Authorize(context.Background(), "Bearer "+token, "")
	if !IsKind(err, FailureLookup) {
		t.Fatalf("kind = %v, want LookupFailure", KindOf(err))
	}
}
