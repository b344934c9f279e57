package util

import (
	"net/http"
	"time"

	"github.com/kirinho/cloud-file/internal/auth"
)

// ErrorDetails is the wire shape of every error response.
type ErrorDetails struct {
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
	Description string    `json:"description"`
}

type mapping struct {
	status  int
	message string
}

// failureTable is the total mapping from failure kind to HTTP status and
// user-safe message. Internal detail never reaches the message field.
var failureTable = map[auth.FailureKind]mapping{
	auth.FailureInvalidCredentials: {http.StatusUnauthorized, "The username or password is incorrect"},
	auth.FailureMissingToken:       {http.StatusUnauthorized, "Authentication is required to access this resource"},
	auth.FailureSubjectNotFound:    {http.StatusUnauthorized, "The account for this token no longer exists"},
	auth.FailureAccountDisabled:    {http.StatusForbidden, "The account is disabled"},
	auth.FailureBadSignature:       {http.StatusForbidden, "The token signature is invalid"},
	auth.FailureExpired:            {http.StatusForbidden, "The token has expired"},
	auth.FailureForbidden:          {http.StatusForbidden, "You are not authorized to access this resource"},
	auth.FailureLookup:             {http.StatusServiceUnavailable, "The service is temporarily unavailable"},
	auth.FailureInternal:           {http.StatusInternalServerError, "Internal server error"},
}

// Translate maps any error to an HTTP status and response body. The
// description identifies the request, mirroring what the caller sent.
// Unrecognized errors fall through to the internal-error mapping.
func Translate(err error, description string) (int, ErrorDetails) {
	kind := auth.KindOf(err)
	m, ok := failureTable[kind]
	if !ok {
		m = failureTable[auth.FailureInternal]
	}
	return m.status, ErrorDetails{
		Timestamp:   time.Now().UTC(),
		Message:     m.message,
		Description: description,
	}
}

// StatusFor returns only the HTTP status for a failure kind.
func StatusFor(kind auth.FailureKind) int {
	if m, ok := failureTable[kind]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}
