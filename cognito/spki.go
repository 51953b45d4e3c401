package cognito

import (
	"encoding/base64"
	"fmt"
)

// DER tag bytes used by the SubjectPublicKeyInfo layout.
const (
	derTagInteger   = 0x02
	derTagBitString = 0x03
	derTagNull      = 0x05
	derTagOID       = 0x06
	derTagSequence  = 0x30
)

// rsaEncryptionAlgID is the DER-encoded AlgorithmIdentifier for
// rsaEncryption (OID 1.2.840.113549.1.1.1) with NULL parameters.
var rsaEncryptionAlgID = []byte{
	derTagSequence, 0x0d,
	derTagOID, 0x09, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01,
	derTagNull, 0x00,
}

// MarshalPublicKey converts one published RSA key into a DER-encoded
// SubjectPublicKeyInfo structure:
//
//	SEQUENCE {
//	  SEQUENCE { OID rsaEncryption, NULL }        -- algorithm identifier
//	  BIT STRING {
//	    SEQUENCE { INTEGER n, INTEGER e }         -- RSAPublicKey
//	  }
//	}
//
// Integers are big-endian with a leading zero byte added when the most
// significant bit is set, keeping them unambiguously positive. All length
// prefixes are definite-form and computed from the encoded content.
func MarshalPublicKey(key Key) ([]byte, error) {
	if key.Kty != "RSA" {
		return nil, newAuthError(KindUnsupportedKeyType,
			fmt.Sprintf("unsupported key type %q, only RSA is supported", key.Kty), nil)
	}

	modulus, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, newAuthError(KindUnsupportedKeyType, "invalid key modulus encoding", err)
	}
	exponent, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, newAuthError(KindUnsupportedKeyType, "invalid key exponent encoding", err)
	}
	if len(modulus) == 0 || len(exponent) == 0 {
		return nil, newAuthError(KindUnsupportedKeyType, "key has empty modulus or exponent", nil)
	}

	// RSAPublicKey ::= SEQUENCE { modulus INTEGER, publicExponent INTEGER }
	rsaPublicKey := derSequence(append(derInteger(modulus), derInteger(exponent)...))

	// BIT STRING contents start with the unused-bits count, always 0 here.
	bitString := derElement(derTagBitString, append([]byte{0x00}, rsaPublicKey...))

	return derSequence(append(append([]byte{}, rsaEncryptionAlgID...), bitString...)), nil
}

// derInteger encodes a big-endian unsigned integer as a DER INTEGER,
// trimming redundant leading zeros and padding with one zero byte when the
// high bit of the first content byte is set.
func derInteger(value []byte) []byte {
	i := 0
	for i < len(value)-1 && value[i] == 0x00 {
		i++
	}
	value = value[i:]

	if value[0]&0x80 != 0 {
		value = append([]byte{0x00}, value...)
	}
	return derElement(derTagInteger, value)
}

// derSequence wraps content in a DER SEQUENCE
func derSequence(content []byte) []byte {
	return derElement(derTagSequence, content)
}

// derElement emits tag, definite-form length, and content. Lengths below
// 128 use the short form; longer contents use the long form with the
// minimal number of length octets.
func derElement(tag byte, content []byte) []byte {
	out := []byte{tag}
	out = append(out, derLength(len(content))...)
	return append(out, content...)
}

// derLength encodes a definite-form DER length
func derLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}

	var octets []byte
	for v := n; v > 0; v >>= 8 {
		octets = append([]byte{byte(v)}, octets...)
	}
	return append([]byte{0x80 | byte(len(octets))}, octets...)
}
