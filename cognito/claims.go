package cognito

import (
	"fmt"
	"time"
)

// signingAlgorithm is the only token algorithm this authorizer accepts.
// Anything else, including the explicit "none" algorithm, is rejected
// before key material is fetched.
const signingAlgorithm = "RS256"

// Accepted token_use claim values.
const (
	tokenUseAccess = "access"
	tokenUseID     = "id"
)

// Identity is the read-only projection of a validated token's payload.
type Identity struct {
	Subject  string   `json:"subject"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	TokenUse string   `json:"tokenUse"`
	ClientID string   `json:"clientId"`
	Scope    string   `json:"scope"`
	Groups   []string `json:"groups"`
}

// ValidateHeader enforces the structural header rules. The algorithm check
// runs before any key set fetch or signature inspection as a defense
// against algorithm-downgrade attacks.
func ValidateHeader(header map[string]any) error {
	kid := claimString(header, "kid")
	if kid == "" {
		return newAuthError(KindMalformedToken, "token header has no kid", nil)
	}

	alg := claimString(header, "alg")
	if alg != signingAlgorithm {
		return newAuthError(KindUnsupportedAlgorithm,
			fmt.Sprintf("token algorithm must be %s, got %q", signingAlgorithm, alg), nil)
	}

	return nil
}

// ValidateClaims enforces the temporal and issuer/audience claim rules
// against the given clock reading. Each failure names the claim it checked.
func ValidateClaims(payload map[string]any, now time.Time, expectedIssuer, clientID string) error {
	exp, ok := claimNumber(payload, "exp")
	if !ok {
		return newClaimError("exp", "token has no expiry claim")
	}
	if time.Unix(int64(exp), 0).Before(now) {
		return newClaimError("exp", "token has expired")
	}

	if nbf, ok := claimNumber(payload, "nbf"); ok {
		if time.Unix(int64(nbf), 0).After(now) {
			return newClaimError("nbf", "token is not valid yet")
		}
	}

	if iss := claimString(payload, "iss"); iss != expectedIssuer {
		return newClaimError("iss",
			fmt.Sprintf("token issuer %q does not match expected issuer %q", iss, expectedIssuer))
	}

	// Access tokens carry the app client in client_id, id tokens in aud.
	// Either claim matching the configured client id satisfies the check.
	aud := claimString(payload, "aud")
	cid := claimString(payload, "client_id")
	if aud != clientID && cid != clientID {
		return newClaimError("aud", "token was not issued for this client")
	}

	tokenUse := claimString(payload, "token_use")
	if tokenUse != tokenUseAccess && tokenUse != tokenUseID {
		return newClaimError("token_use",
			fmt.Sprintf("token_use must be %q or %q, got %q", tokenUseAccess, tokenUseID, tokenUse))
	}

	return nil
}

// IdentityFromPayload builds the identity projection from a validated
// payload. Missing optional claims leave their fields empty.
func IdentityFromPayload(payload map[string]any) *Identity {
	username := claimString(payload, "cognito:username")
	if username == "" {
		username = claimString(payload, "username")
	}

	clientID := claimString(payload, "client_id")
	if clientID == "" {
		clientID = claimString(payload, "aud")
	}

	return &Identity{
		Subject:  claimString(payload, "sub"),
		Username: username,
		Email:    claimString(payload, "email"),
		TokenUse: claimString(payload, "token_use"),
		ClientID: clientID,
		Scope:    claimString(payload, "scope"),
		Groups:   claimStrings(payload, "cognito:groups"),
	}
}

// claimString reads a string claim, returning "" when absent or not a string
func claimString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// claimNumber reads a numeric claim. JSON numbers decode as float64.
func claimNumber(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// claimStrings reads a string-list claim, skipping non-string entries
func claimStrings(m map[string]any, key string) []string {
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
