package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrConfiguration marks fatal startup misconfiguration. It is never mapped
// to an HTTP response; the process refuses to start instead.
var ErrConfiguration = errors.New("invalid configuration")

// The per-request failure taxonomy. Every failure that reaches the HTTP
// boundary is one of these; respondFailure maps them exhaustively to the
// uniform envelope.

// NotFoundError reports a missing account. The id is surfaced to the client.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Account not found with id: %d", e.ID)
}

// ValidationFailure carries per-field violations collected by the validator.
type ValidationFailure struct {
	Details map[string]string
}

func (e ValidationFailure) Error() string { return "validation failed" }

// MalformedRequestError reports an unreadable body or an unparseable path
// parameter. Distinct from ValidationFailure: nothing was validated because
// the input could not be read. Field names the offending part when known.
type MalformedRequestError struct {
	Field  string
	Detail string
}

func (e MalformedRequestError) Error() string { return e.Detail }

func (e MalformedRequestError) details() map[string]string {
	field := e.Field
	if field == "" {
		field = "request"
	}
	return map[string]string{field: e.Detail}
}

// AuthenticationError reports a failed or absent authentication. The reason
// stays internal; clients always see a bare 401.
type AuthenticationError struct {
	Reason AuthFailureReason
}

func (e AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// AuthorizationError reports an authenticated principal lacking a required role.
type AuthorizationError struct {
	Username string
	Required []Role
}

func (e AuthorizationError) Error() string {
	return fmt.Sprintf("user %q lacks required role", e.Username)
}

// errorEnvelope is the uniform JSON error shape returned for every failure.
type errorEnvelope struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

// respondFailure is the single boundary converting taxonomy errors into the
// uniform envelope. Anything unrecognized is an internal failure and its
// detail is suppressed.
func respondFailure(c *gin.Context, err error) {
	var (
		notFound   NotFoundError
		validation ValidationFailure
		malformed  MalformedRequestError
		authn      AuthenticationError
		authz      AuthorizationError
	)

	switch {
	case errors.As(err, &notFound):
		respondError(c, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, "Invalid request", validation.Details)
	case errors.As(err, &malformed):
		respondError(c, http.StatusBadRequest, "Invalid request", malformed.details())
	case errors.As(err, &authn):
		c.Header("WWW-Authenticate", `Basic realm="accounts"`)
		respondError(c, http.StatusUnauthorized, "Authentication required", nil)
	case errors.As(err, &authz):
		respondError(c, http.StatusForbidden, "Access denied", nil)
	default:
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred", nil)
	}
}

// respondError writes the envelope with the status reason phrase filled in.
func respondError(c *gin.Context, status int, message string, details map[string]string) {
	c.JSON(status, errorEnvelope{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Details:   details,
	})
}
