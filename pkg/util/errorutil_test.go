package util

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/kirinho/cloud-file/internal/auth"
)

func TestTranslateCoversEveryKind(t *testing.T) {
	cases := []struct {
		kind   auth.FailureKind
		status int
	}{
		{auth.FailureInvalidCredentials, http.StatusUnauthorized},
		{auth.FailureMissingToken, http.StatusUnauthorized},
		{auth.FailureSubjectNotFound, http.StatusUnauthorized},
		{auth.FailureAccountDisabled, http.StatusForbidden},
		{auth.FailureBadSignature, http.StatusForbidden},
		{auth.FailureExpired, http.StatusForbidden},
		{auth.FailureForbidden, http.StatusForbidden},
		{auth.FailureLookup, http.StatusServiceUnavailable},
		{auth.FailureInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, body := Translate(auth.NewFailure(tc.kind), "GET /users/me")
		if status != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.kind, status, tc.status)
		}
		if body.Message == "" {
			t.Fatalf("%s: empty message", tc.kind)
		}
		if body.Description != "GET /users/me" {
			t.Fatalf("%s: description = %q", tc.kind, body.Description)
		}
		if body.Timestamp.IsZero() {
			t.Fatalf("%s: missing timestamp", tc.kind)
		}
	}
}

func TestTranslateHidesInternalDetail(t *testing.T) {
	cause := errors.New("pq: connection refused on 10.0.0.5")
	status, body := Translate(auth.WrapFailure(auth.FailureLookup, cause), "POST /auth/login")

	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", status)
	}
	if strings.Contains(body.Message, "10.0.0.5") || strings.Contains(body.Message, "pq:") {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestTranslateUnrecognizedError(t *testing.T) {
	status, body := Translate(errors.New("something odd"), "GET /x")
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestStatusFor(t *testing.T) {
	if got := StatusFor(auth.FailureForbidden); got != http.StatusForbidden {
		t.Fatalf("StatusFor(Forbidden) = %d", got)
	}
	if got := StatusFor(auth.FailureKind("BOGUS")); got != http.StatusInternalServerError {
		t.Fatalf("StatusFor(unknown) = %d", got)
	}
}
