package cognito

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// signRS256 produces a PKCS#1 v1.5 RSA-SHA256 signature over input
func signRS256(t *testing.T, key *rsa.PrivateKey, input []byte) []byte {
	t.Helper()
	digest := sha256.Sum256(input)
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)
	return signature
}

// mintToken mints an RS256 token with the given kid and claims
func mintToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// mintHS256Token mints a token declaring the HMAC algorithm
func mintHS256Token(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString([]byte("shared-secret"))
	require.NoError(t, err)
	return signed
}

// mintUnsignedToken mints a token declaring the "none" algorithm
func mintUnsignedToken(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return signed
}

// fakeKeySetFetcher returns canned keys or a canned error and counts calls
type fakeKeySetFetcher struct {
	keys  []Key
	err   error
	calls int
}

func (f *fakeKeySetFetcher) FetchKeySet(ctx context.Context) ([]Key, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.keys, nil
}
