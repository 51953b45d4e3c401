package cognito

import (
	"errors"
	"fmt"
)

// Kind categorizes authentication failures so callers can branch on the
// cause without matching error message strings.
type Kind string

const (
	KindMissingToken         Kind = "missing_token"
	KindMalformedToken       Kind = "malformed_token"
	KindUnsupportedAlgorithm Kind = "unsupported_algorithm"
	KindClaimValidation      Kind = "claim_validation"
	KindKeyFetch             Kind = "key_fetch"
	KindKeyNotFound          Kind = "key_not_found"
	KindUnsupportedKeyType   Kind = "unsupported_key_type"
	KindInvalidSignature     Kind = "invalid_signature"
)

// AuthError is a structured authentication error. Claim is set only for
// KindClaimValidation and names the claim that failed.
type AuthError struct {
	Kind    Kind
	Claim   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is: two AuthErrors match when their kinds match
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// newAuthError creates a new AuthError
func newAuthError(kind Kind, message string, err error) *AuthError {
	return &AuthError{Kind: kind, Message: message, Err: err}
}

// newClaimError creates a claim validation error naming the failing claim
func newClaimError(claim, message string) *AuthError {
	return &AuthError{
		Kind:    KindClaimValidation,
		Claim:   claim,
		Message: message,
	}
}

// GetKind returns the Kind of an authentication error, or empty string if
// err is not an AuthError.
func GetKind(err error) Kind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}
