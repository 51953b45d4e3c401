// Package cognito validates bearer tokens issued by an AWS Cognito user
// pool. It decodes the compact token, enforces header and claim rules,
// fetches and caches the pool's published signing keys, converts them to
// DER SubjectPublicKeyInfo, and verifies the RSA-SHA256 signature.
package cognito
