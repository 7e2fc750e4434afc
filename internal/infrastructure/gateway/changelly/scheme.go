// Package changelly implements the Changelly payment gateway integration.
// The crypto (pay.changelly.com) and fiat (fiat-api.changelly.com) APIs use
// different signature schemes; each is implemented as a Scheme so the HTTP
// client and the callback middleware stay agnostic of the variant.
package changelly

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"strings"
)

// Scheme signs outgoing API requests and verifies incoming callbacks for
// one Changelly API variant.
type Scheme interface {
	BaseURL() string
	APIKey() string
	// SignatureHeader names the request header carrying the signature.
	SignatureHeader() string
	// Sign produces the signature header value for a request.
	Sign(method, path string, body []byte, expiration int64) (string, error)
	// VerifyCallback checks the provider's signature on a callback request.
	VerifyCallback(header http.Header, body []byte) error
}

// Key material arrives from the provider dashboard as raw base64 without
// PEM armor; wrap it so the stdlib parsers accept it.
func wrapPEM(blockType, rawBase64 string) []byte {
	var b strings.Builder
	b.WriteString("-----BEGIN " + blockType + "-----\n")
	for len(rawBase64) > 64 {
		b.WriteString(rawBase64[:64] + "\n")
		rawBase64 = rawBase64[64:]
	}
	if rawBase64 != "" {
		b.WriteString(rawBase64 + "\n")
	}
	b.WriteString("-----END " + blockType + "-----\n")
	return []byte(b.String())
}

func parsePKCS8PrivateKey(rawBase64 string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(wrapPEM("PRIVATE KEY", rawBase64))
	if block == nil {
		return nil, fmt.Errorf("invalid private key encoding")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, nil
}

func parsePKIXPublicKey(rawBase64 string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(wrapPEM("PUBLIC KEY", rawBase64))
	if block == nil {
		return nil, fmt.Errorf("invalid public key encoding")
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}
	return rsaKey, nil
}

func parsePKCS1PrivateKey(rawBase64 string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(wrapPEM("RSA PRIVATE KEY", rawBase64))
	if block == nil {
		return nil, fmt.Errorf("invalid private key encoding")
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return key, nil
}

func parsePKCS1PublicKey(rawBase64 string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(wrapPEM("RSA PUBLIC KEY", rawBase64))
	if block == nil {
		return nil, fmt.Errorf("invalid public key encoding")
	}

	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return key, nil
}

// emptyBody reports whether a request body should be excluded from the
// signature payload.
func emptyBody(body []byte) bool {
	return len(body) == 0 || string(body) == "{}"
}
