package auth

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(NewFailure(FailureExpired)); got != FailureExpired {
		t.Fatalf("KindOf = %v, want Expired", got)
	}

	wrapped := fmt.Errorf("handling request: %w", NewFailure(FailureForbidden))
	if got := KindOf(wrapped); got != FailureForbidden {
		t.Fatalf("KindOf through wrap = %v, want Forbidden", got)
	}

	if got := KindOf(errors.New("plain")); got != FailureInternal {
		t.Fatalf("KindOf(plain) = %v, want Internal", got)
	}
	if got := KindOf(nil); got != FailureInternal {
		t.Fatalf("KindOf(nil) = %v, want Internal", got)
	}
}

func TestFailureUnwrap(t *testing.T) {
	cause := errors.New("db down")
	failure := WrapFailure(FailureLookup, cause)

	if !errors.Is(failure, cause) {
		t.Fatal("expected the cause to be reachable via errors.Is")
	}
	if !IsKind(failure, FailureLookup) {
		t.Fatal("expected LookupFailure kind")
	}
	if IsKind(failure, FailureExpired) {
		t.Fatal("kind must match exactly")
	}
}
