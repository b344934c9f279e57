package auth

import (
	"strings"
	"testing"
	"time"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestMintParseRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tm := NewTokenManager("test-secret", time.Hour).WithClock(fixedClock(now))

	token, expiresAt, err := tm.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, now.Add(time.Hour))
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SubjectID() != "user-1" {
		t.Fatalf("sub = %q, want user-1", claims.SubjectID())
	}
	if claims.ID == "" {
		t.Fatal("expected a jti claim")
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("exp - iat = %v, want %v", got, time.Hour)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tm := NewTokenManager("test-secret", time.Hour).WithClock(fixedClock(now))

	token, _, err := tm.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(segments))
	}

	for i := range segments {
		mutated := make([]string, 3)
		copy(mutated, segments)

		seg := []byte(mutated[i])
		mid := len(seg) / 2
		if seg[mid] == 'A' {
			seg[mid] = 'B'
		} else {
			seg[mid] = 'A'
		}
		mutated[i] = string(seg)

		_, err := tm.Parse(strings.Join(mutated, "."))
		if !IsKind(err, FailureBadSignature) {
			t.Fatalf("segment %d mutation: kind = %v, want BadSignature", i, KindOf(err))
		}
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	minter := NewTokenManager("secret-a", time.Hour).WithClock(fixedClock(now))
	checker := NewTokenManager("secret-b", time.Hour).WithClock(fixedClock(now))

	token, _, err := minter.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := checker.Parse(token); !IsKind(err, FailureBadSignature) {
		t.Fatalf("kind = %v, want BadSignature", KindOf(err))
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := tm.Parse(tok); !IsKind(err, FailureBadSignature) {
			t.Fatalf("Parse(%q): kind = %v, want BadSignature", tok, KindOf(err))
		}
	}
}

func TestExpiryBoundary(t *testing.T) {
	minted := time.Unix(1700000000, 0)
	now := minted
	tm := NewTokenManager("test-secret", time.Hour).WithClock(func() time.Time { return now })

	token, expiresAt, err := tm.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	// One second before expiry the token is still valid.
	now = expiresAt.Add(-time.Second)
	if _, err := tm.Parse(token); err != nil {
		t.Fatalf("parse at exp-1s: %v", err)
	}

	// From the expiry second onward it is not.
	now = expiresAt
	if _, err := tm.Parse(token); !IsKind(err, FailureExpired) {
		t.Fatalf("parse at exp: kind = %v, want Expired", KindOf(err))
	}

	now = expiresAt.Add(time.Second)
	if _, err := tm.Parse(token); !IsKind(err, FailureExpired) {
		t.Fatalf("parse at exp+1s: kind = %v, want Expired", KindOf(err))
	}
}

func TestMintUsesWholeSeconds(t *testing.T) {
	now := time.Unix(1700000000, 123456789)
	tm := NewTokenManager("test-secret", time.Hour).WithClock(fixedClock(now))

	token, _, err := tm.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.IssuedAt.Time.Nanosecond() != 0 || claims.ExpiresAt.Time.Nanosecond() != 0 {
		t.Fatal("iat/exp must be whole seconds")
	}
}
