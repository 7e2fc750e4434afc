package changelly

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	sharedConfig "github.com/jubbslineu/tokensale/internal/shared/config"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

// CryptoScheme signs requests for the crypto payments API. Requests carry
// an RSA-SHA256 signature over "method:path:base64(body):expiration";
// callbacks carry an X-Signature header holding base64("sigB64:expiration")
// where sigB64 signs "body:expiration".
type CryptoScheme struct {
	baseURL           string
	apiKey            string
	privateKey        *rsa.PrivateKey
	callbackPublicKey *rsa.PublicKey
}

func NewCryptoScheme(cfg sharedConfig.ChangellySchemeConfig) (*CryptoScheme, error) {
	scheme := &CryptoScheme{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}

	if cfg.PrivateKey != "" {
		key, err := parsePKCS8PrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("crypto private key: %w", err)
		}
		scheme.privateKey = key
	}
	if cfg.CallbackPublicKey != "" {
		key, err := parsePKIXPublicKey(cfg.CallbackPublicKey)
		if err != nil {
			return nil, fmt.Errorf("crypto callback public key: %w", err)
		}
		scheme.callbackPublicKey = key
	}
	return scheme, nil
}

var _ Scheme = (*CryptoScheme)(nil)

func (s *CryptoScheme) BaseURL() string         { return s.baseURL }
func (s *CryptoScheme) APIKey() string          { return s.apiKey }
func (s *CryptoScheme) SignatureHeader() string { return "X-Signature" }

func (s *CryptoScheme) Sign(method, path string, body []byte, expiration int64) (string, error) {
	if s.privateKey == nil {
		return "", fmt.Errorf("crypto private key not configured")
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimRight(path, "/")

	bodyBase64 := ""
	if !emptyBody(body) {
		bodyBase64 = base64.StdEncoding.EncodeToString(body)
	}
	payload := fmt.Sprintf("%s:%s:%s:%d", strings.ToLower(method), path, bodyBase64, expiration)

	digest := sha256.Sum256([]byte(payload))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	inner := base64.StdEncoding.EncodeToString(signature)
	return base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%d", inner, expiration))), nil
}

func (s *CryptoScheme) VerifyCallback(header http.Header, body []byte) error {
	if s.callbackPublicKey == nil {
		return apperrors.NewInternalError("CRYPTO callback verification failed",
			"Callback public key not configured")
	}

	signatureHeader := header.Get("X-Signature")
	if signatureHeader == "" {
		return apperrors.NewBadRequestError("CRYPTO callback verification failed",
			"Signature missing", "X-Signature")
	}

	decoded, err := base64.StdEncoding.DecodeString(signatureHeader)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Malformed X-Signature header")
	}

	sigB64, expiration, found := strings.Cut(string(decoded), ":")
	if !found {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Malformed X-Signature header")
	}

	signature, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Malformed X-Signature header")
	}

	payload := fmt.Sprintf("%s:%s", body, expiration)
	digest := sha256.Sum256([]byte(payload))
	if err := rsa.VerifyPKCS1v15(s.callbackPublicKey, crypto.SHA256, digest[:], signature); err != nil {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Invalid header for CRYPTO", "X-Signature")
	}
	return nil
}
