package cognito

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodedToken holds the decoded pieces of a compact JWT. SigningInput is
// the raw (still-encoded) header and payload segments joined by a dot, which
// is the exact byte sequence the signature was computed over.
type DecodedToken struct {
	Header       map[string]any
	Payload      map[string]any
	SigningInput []byte
	Signature    []byte
}

// DecodeToken splits and decodes a compact token without verifying it.
// The token must have exactly three dot-separated segments; the first two
// must be base64url-encoded JSON objects. No claim or signature checks
// happen here.
func DecodeToken(tokenString string) (*DecodedToken, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, newAuthError(KindMalformedToken,
			fmt.Sprintf("token must have 3 segments, got %d", len(parts)), nil)
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return nil, newAuthError(KindMalformedToken, "invalid token header", err)
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, newAuthError(KindMalformedToken, "invalid token payload", err)
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, newAuthError(KindMalformedToken, "invalid token signature encoding", err)
	}

	return &DecodedToken{
		Header:       header,
		Payload:      payload,
		SigningInput: []byte(parts[0] + "." + parts[1]),
		Signature:    signature,
	}, nil
}

// decodeSegment base64url-decodes a segment and parses it as a JSON object
func decodeSegment(segment string) (map[string]any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("base64url decode failed: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}
	return m, nil
}
