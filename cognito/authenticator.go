package cognito

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Status tags the outcome of one authentication pass.
type Status string

const (
	// StatusAuthenticated means the token verified and Identity is set.
	StatusAuthenticated Status = "authenticated"

	// StatusUnauthenticated means no token was presented and authentication
	// is optional. Not an error.
	StatusUnauthenticated Status = "unauthenticated"

	// StatusRejected means authentication failed and Err is set.
	StatusRejected Status = "rejected"
)

// Outcome is the tagged result of Authenticate. Exactly one of Identity and
// Err is set, depending on Status.
type Outcome struct {
	Status   Status
	Identity *Identity
	Err      *AuthError
}

// Config holds the authenticator's construction-time configuration.
type Config struct {
	// Region is the AWS region hosting the user pool, e.g. "us-east-1".
	Region string

	// UserPoolID identifies the Cognito user pool, e.g. "us-east-1_Abc123".
	UserPoolID string

	// ClientID is the app client id tokens must be issued for.
	ClientID string

	// Optional allows requests without a token to pass as unauthenticated.
	// By default a token is required.
	Optional bool
}

// Authenticator validates bearer tokens against a Cognito user pool's
// published signing keys. One instance serves concurrent requests; it keeps
// no per-request state.
type Authenticator struct {
	config         Config
	expectedIssuer string
	keys           *KeySetCache
	logger         *zap.Logger
	now            func() time.Time
}

// NewAuthenticator creates an Authenticator. Missing region, user pool id,
// or client id is a construction error, not a per-request failure. A nil
// keys cache gets a default HTTPS-backed cache; a nil logger is replaced
// with a no-op logger.
func NewAuthenticator(config Config, keys *KeySetCache, logger *zap.Logger) (*Authenticator, error) {
	if config.Region == "" {
		return nil, errors.New("cognito region is required")
	}
	if config.UserPoolID == "" {
		return nil, errors.New("cognito user pool ID is required")
	}
	if config.ClientID == "" {
		return nil, errors.New("cognito client ID is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	if keys == nil {
		keys = NewKeySetCache(NewHTTPKeySetFetcher(config.Region, config.UserPoolID, nil), nil, logger)
	}

	return &Authenticator{
		config: config,
		expectedIssuer: fmt.Sprintf(
			"https://cognito-idp.%s.amazonaws.com/%s",
			config.Region, config.UserPoolID,
		),
		keys:   keys,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Authenticate runs one validation pass over the request: extract the token,
// decode it, check header and payload claims, resolve the signing key, and
// verify the signature. Claim checks run before the key set fetch so a
// malformed or expired token never triggers a network call.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) Outcome {
	token := extractToken(r)
	if token == "" {
		// An upstream layer may have already authenticated the caller.
		if identity := IdentityFromContext(r.Context()); identity != nil {
			return Outcome{Status: StatusAuthenticated, Identity: identity}
		}
		if a.config.Optional {
			return Outcome{Status: StatusUnauthenticated}
		}
		return rejected(newAuthError(KindMissingToken, "no bearer token in request", nil))
	}

	decoded, err := DecodeToken(token)
	if err != nil {
		return rejected(err)
	}

	if err := ValidateHeader(decoded.Header); err != nil {
		return rejected(err)
	}

	if err := ValidateClaims(decoded.Payload, a.now(), a.expectedIssuer, a.config.ClientID); err != nil {
		return rejected(err)
	}

	keySet, err := a.keys.Get(ctx)
	if err != nil {
		return rejected(err)
	}

	kid := claimString(decoded.Header, "kid")
	key, ok := keySet.Lookup(kid)
	if !ok {
		return rejected(newAuthError(KindKeyNotFound,
			fmt.Sprintf("key id %q not found in key set", kid), nil))
	}

	publicKeyDER, err := MarshalPublicKey(key)
	if err != nil {
		return rejected(err)
	}

	if !verifySignature(decoded.SigningInput, decoded.Signature, publicKeyDER) {
		return rejected(newAuthError(KindInvalidSignature, "token signature verification failed", nil))
	}

	identity := IdentityFromPayload(decoded.Payload)
	a.logger.Debug("token authenticated",
		zap.String("sub", identity.Subject),
		zap.String("token_use", identity.TokenUse))

	return Outcome{Status: StatusAuthenticated, Identity: identity}
}

// rejected wraps an error into a Rejected outcome. Errors that are not
// AuthErrors collapse into an invalid-signature rejection; callers never see
// raw engine errors.
func rejected(err error) Outcome {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		authErr = newAuthError(KindInvalidSignature, "token cannot be trusted", err)
	}
	return Outcome{Status: StatusRejected, Err: authErr}
}

// verifySignature runs the RSA-SHA256 check against a DER-encoded
// SubjectPublicKeyInfo. Malformed key bytes report false rather than an
// error: either way the token cannot be trusted.
func verifySignature(signingInput, signature, publicKeyDER []byte) bool {
	parsed, err := x509.ParsePKIXPublicKey(publicKeyDER)
	if err != nil {
		return false
	}
	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return false
	}

	digest := sha256.Sum256(signingInput)
	return rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], signature) == nil
}

// extractToken pulls the bearer token from the Authorization header or,
// failing that, the "token" query parameter.
func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	return r.URL.Query().Get("token")
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
